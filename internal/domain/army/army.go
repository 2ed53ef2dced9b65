// Package army exposes the army collaborator contract the character
// engine needs: leadership, ownership and the reset values applied
// when leadership is vacated. Combat resolution is external.
package army

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// TroopTypes is the number of troop slots an army carries.
const TroopTypes = 7

// Leaderless armies fall back to these defaults.
const (
	DefaultAggression = 1
	DefaultCombatOdds = 4
)

// Army is a field army tied to an owning player character and an
// optional leader.
type Army struct {
	ArmyID   shared.ArmyID      `json:"id"`
	OwnerID  shared.CharacterID `json:"owner"`
	LeaderID shared.CharacterID `json:"leader,omitempty"`

	Troops     [TroopTypes]int `json:"troops"`
	Days       float64         `json:"days"`
	Aggression int             `json:"aggression"`
	CombatOdds int             `json:"combat_odds"`

	Location shared.PlaceID `json:"location,omitempty"`
	SiegeID  shared.SiegeID `json:"siege,omitempty"`
}

// GetLeader returns the leader id, empty when leaderless.
func (a *Army) GetLeader() shared.CharacterID { return a.LeaderID }

// GetOwner returns the owning character id.
func (a *Army) GetOwner() shared.CharacterID { return a.OwnerID }

// SetLeader assigns a leader.
func (a *Army) SetLeader(id shared.CharacterID) { a.LeaderID = id }

// VacateLeader clears leadership and resets stance to defaults.
func (a *Army) VacateLeader() {
	a.LeaderID = ""
	a.Aggression = DefaultAggression
	a.CombatOdds = DefaultCombatOdds
}

// Besieging reports whether the army is committed to a siege.
func (a *Army) Besieging() bool { return a.SiegeID != "" }

// TotalTroops sums all troop slots.
func (a *Army) TotalTroops() int {
	var total int
	for _, t := range a.Troops {
		total += t
	}
	return total
}

// MoveArmy relocates the army.
func (a *Army) MoveArmy(dest shared.PlaceID) { a.Location = dest }

// Siege records an active siege of a fief by a player character's army.
type Siege struct {
	ID       shared.SiegeID     `json:"id"`
	Fief     shared.PlaceID     `json:"fief"`
	Besieger shared.CharacterID `json:"besieger"`
	Army     shared.ArmyID      `json:"army,omitempty"`
}
