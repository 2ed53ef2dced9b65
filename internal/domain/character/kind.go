package character

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Kind is the tagged variant distinguishing player characters from
// non-player characters. Capability accessors return optional views so
// callers never downcast.
type Kind struct {
	Player    *PlayerState    `json:"player,omitempty"`
	NonPlayer *NonPlayerState `json:"non_player,omitempty"`
}

// PlayerKind wraps a player state into a Kind.
func PlayerKind(st *PlayerState) Kind {
	if st == nil {
		st = &PlayerState{}
	}
	if st.Proposals == nil {
		st.Proposals = make(map[shared.CharacterID]Proposal)
	}
	return Kind{Player: st}
}

// NonPlayerKind wraps a non-player state into a Kind.
func NonPlayerKind(st *NonPlayerState) Kind {
	if st == nil {
		st = &NonPlayerState{}
	}
	if st.LastOffers == nil {
		st.LastOffers = make(map[shared.CharacterID]int64)
	}
	return Kind{NonPlayer: st}
}

// PlayerState is the state only player characters carry. Player
// characters are always their own family heads.
type PlayerState struct {
	// PlayerID of the owning player; empty for an unplayed PC.
	PlayerID shared.PlayerID `json:"player_id,omitempty"`
	Outlawed bool            `json:"outlawed"`
	Purse    int64           `json:"purse"`

	Fiefs     []shared.PlaceID     `json:"fiefs,omitempty"`
	Provinces []shared.PlaceID     `json:"provinces,omitempty"`
	Armies    []shared.ArmyID      `json:"armies,omitempty"`
	Sieges    []shared.SiegeID     `json:"sieges,omitempty"`
	Entourage []shared.CharacterID `json:"entourage,omitempty"`
	Captives  []shared.CharacterID `json:"captives,omitempty"`

	// Proposals tracks active marriage proposals made by members of
	// this family, keyed by groom id.
	Proposals map[shared.CharacterID]Proposal `json:"proposals,omitempty"`
}

// NonPlayerState is the state only non-player characters carry.
type NonPlayerState struct {
	Salary int64 `json:"salary"`

	// LastOffers records the most recent hire offer per suitor.
	LastOffers map[shared.CharacterID]int64 `json:"last_offers,omitempty"`

	InEntourage bool `json:"in_entourage"`
	Heir        bool `json:"heir"`
}

// Proposal is an active marriage proposal recorded under the groom's
// family head until the scheduled wedding resolves.
type Proposal struct {
	Groom   shared.CharacterID `json:"groom"`
	Bride   shared.CharacterID `json:"bride"`
	EventID int64              `json:"event_id"`
}

// Player returns the player-capability view.
func (c *Character) Player() (*PlayerState, bool) {
	if c.Kind.Player != nil {
		return c.Kind.Player, true
	}
	return nil, false
}

// NonPlayer returns the non-player-capability view.
func (c *Character) NonPlayer() (*NonPlayerState, bool) {
	if c.Kind.NonPlayer != nil {
		return c.Kind.NonPlayer, true
	}
	return nil, false
}

// IsPlayer reports whether this is a player character.
func (c *Character) IsPlayer() bool { return c.Kind.Player != nil }

// OwnsFief reports whether the PC owns the given fief.
func (st *PlayerState) OwnsFief(id shared.PlaceID) bool {
	for _, f := range st.Fiefs {
		if f == id {
			return true
		}
	}
	return false
}

// AddFief records fief ownership, ignoring duplicates.
func (st *PlayerState) AddFief(id shared.PlaceID) {
	if st.OwnsFief(id) {
		return
	}
	st.Fiefs = append(st.Fiefs, id)
}

// RemoveFief drops fief ownership if present.
func (st *PlayerState) RemoveFief(id shared.PlaceID) {
	for i, f := range st.Fiefs {
		if f == id {
			st.Fiefs = append(st.Fiefs[:i], st.Fiefs[i+1:]...)
			return
		}
	}
}

// OwnsProvince reports whether the PC owns the given province.
func (st *PlayerState) OwnsProvince(id shared.PlaceID) bool {
	for _, p := range st.Provinces {
		if p == id {
			return true
		}
	}
	return false
}

// AddProvince records province ownership, ignoring duplicates.
func (st *PlayerState) AddProvince(id shared.PlaceID) {
	if st.OwnsProvince(id) {
		return
	}
	st.Provinces = append(st.Provinces, id)
}

// RemoveProvince drops province ownership if present.
func (st *PlayerState) RemoveProvince(id shared.PlaceID) {
	for i, p := range st.Provinces {
		if p == id {
			st.Provinces = append(st.Provinces[:i], st.Provinces[i+1:]...)
			return
		}
	}
}

// HasCaptive reports whether the PC holds the given captive.
func (st *PlayerState) HasCaptive(id shared.CharacterID) bool {
	for _, c := range st.Captives {
		if c == id {
			return true
		}
	}
	return false
}

// AddCaptive records a held captive, ignoring duplicates.
func (st *PlayerState) AddCaptive(id shared.CharacterID) {
	if st.HasCaptive(id) {
		return
	}
	st.Captives = append(st.Captives, id)
}

// RemoveCaptive drops a held captive if present.
func (st *PlayerState) RemoveCaptive(id shared.CharacterID) {
	for i, c := range st.Captives {
		if c == id {
			st.Captives = append(st.Captives[:i], st.Captives[i+1:]...)
			return
		}
	}
}

// InEntourage reports whether the NPC id is in the PC's entourage.
func (st *PlayerState) InEntourage(id shared.CharacterID) bool {
	for _, e := range st.Entourage {
		if e == id {
			return true
		}
	}
	return false
}

// AddToEntourage records an entourage member, ignoring duplicates.
func (st *PlayerState) AddToEntourage(id shared.CharacterID) {
	if st.InEntourage(id) {
		return
	}
	st.Entourage = append(st.Entourage, id)
}

// RemoveFromEntourage drops an entourage member if present.
func (st *PlayerState) RemoveFromEntourage(id shared.CharacterID) {
	for i, e := range st.Entourage {
		if e == id {
			st.Entourage = append(st.Entourage[:i], st.Entourage[i+1:]...)
			return
		}
	}
}

// RemoveArmy drops army ownership if present.
func (st *PlayerState) RemoveArmy(id shared.ArmyID) {
	for i, a := range st.Armies {
		if a == id {
			st.Armies = append(st.Armies[:i], st.Armies[i+1:]...)
			return
		}
	}
}
