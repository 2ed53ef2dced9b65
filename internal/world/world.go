// Package world owns the canonical entity registries. Every
// relationship field on an entity is an id resolved through the World;
// lookups return nil when an id does not resolve, and callers treat
// that as feature-absent rather than crashing.
package world

import (
	"sync"

	"github.com/talgard/crownlands/internal/domain/army"
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"

	cerr "github.com/talgard/crownlands/internal/errors"
)

// World is the explicit context object replacing ambient global
// registries. It is passed by reference into every component.
type World struct {
	// mu is the world-level exclusive section. The season tick holds
	// it for the entire sweep; client-triggered operations serialize
	// against the tick through Exclusive.
	mu sync.Mutex

	characters map[shared.CharacterID]*character.Character
	places     map[shared.PlaceID]place.Place
	armies     map[shared.ArmyID]*army.Army
	sieges     map[shared.SiegeID]*army.Siege
	sessions   map[shared.PlayerID]*Session

	// entourageLocks serialize day-sync fan-out per player character.
	entourageLocks   map[shared.CharacterID]*sync.Mutex
	entourageLocksMu sync.Mutex

	victories  map[shared.CharacterID]*VictoryRecord
	challenges map[string]*Challenge

	// StatureCapped restricts stature-modifier deltas so the derived
	// stature never leaves [1,9].
	StatureCapped bool

	// Now is the current season-calendar date.
	Now shared.Date
}

// Session binds a player account to its characters. ActiveCharacter is
// the character the player currently controls; RootCharacter is the
// fallback control switches to when the active one dies.
type Session struct {
	PlayerID        shared.PlayerID    `json:"player_id"`
	RootCharacter   shared.CharacterID `json:"root_character"`
	ActiveCharacter shared.CharacterID `json:"active_character"`
	Connected       bool               `json:"-"`
}

// VictoryRecord tallies battle outcomes per character.
type VictoryRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// New creates an empty world at the given date.
func New(now shared.Date) *World {
	return &World{
		characters:     make(map[shared.CharacterID]*character.Character),
		places:         make(map[shared.PlaceID]place.Place),
		armies:         make(map[shared.ArmyID]*army.Army),
		sieges:         make(map[shared.SiegeID]*army.Siege),
		sessions:       make(map[shared.PlayerID]*Session),
		entourageLocks: make(map[shared.CharacterID]*sync.Mutex),
		victories:      make(map[shared.CharacterID]*VictoryRecord),
		challenges:     make(map[string]*Challenge),
		Now:            now,
	}
}

// Exclusive runs fn inside the world-level exclusive section. The
// season tick and every client-triggered operation go through here.
func (w *World) Exclusive(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn()
}

// AddCharacter registers a character record.
func (w *World) AddCharacter(c *character.Character) error {
	if c == nil {
		return cerr.InvalidArgument("character cannot be nil")
	}
	if _, exists := w.characters[c.ID]; exists {
		return cerr.AlreadyExistsf("character %s already registered", c.ID).
			WithMeta("character_id", string(c.ID))
	}
	w.characters[c.ID] = c
	return nil
}

// Character resolves a character id, nil when unresolved or unset.
func (w *World) Character(id shared.CharacterID) *character.Character {
	if id.None() {
		return nil
	}
	return w.characters[id]
}

// Characters returns every registered character, in no particular order.
func (w *World) Characters() []*character.Character {
	out := make([]*character.Character, 0, len(w.characters))
	for _, c := range w.characters {
		out = append(out, c)
	}
	return out
}

// AddPlace registers a place.
func (w *World) AddPlace(p place.Place) error {
	if p == nil {
		return cerr.InvalidArgument("place cannot be nil")
	}
	if _, exists := w.places[p.ID()]; exists {
		return cerr.AlreadyExistsf("place %s already registered", p.ID()).
			WithMeta("place_id", string(p.ID()))
	}
	w.places[p.ID()] = p
	return nil
}

// Place resolves a place id, nil when unresolved.
func (w *World) Place(id shared.PlaceID) place.Place {
	if id.None() {
		return nil
	}
	return w.places[id]
}

// Fief resolves a place id to a fief, nil when not a fief.
func (w *World) Fief(id shared.PlaceID) *place.Fief {
	f, _ := w.Place(id).(*place.Fief)
	return f
}

// Province resolves a place id to a province, nil when not a province.
func (w *World) Province(id shared.PlaceID) *place.Province {
	p, _ := w.Place(id).(*place.Province)
	return p
}

// Kingdom resolves a place id to a kingdom, nil when not a kingdom.
func (w *World) Kingdom(id shared.PlaceID) *place.Kingdom {
	k, _ := w.Place(id).(*place.Kingdom)
	return k
}

// Fiefs returns every registered fief.
func (w *World) Fiefs() []*place.Fief {
	var out []*place.Fief
	for _, p := range w.places {
		if f, ok := p.(*place.Fief); ok {
			out = append(out, f)
		}
	}
	return out
}

// Kingdoms returns every registered kingdom.
func (w *World) Kingdoms() []*place.Kingdom {
	var out []*place.Kingdom
	for _, p := range w.places {
		if k, ok := p.(*place.Kingdom); ok {
			out = append(out, k)
		}
	}
	return out
}

// AddArmy registers an army.
func (w *World) AddArmy(a *army.Army) error {
	if a == nil {
		return cerr.InvalidArgument("army cannot be nil")
	}
	if _, exists := w.armies[a.ArmyID]; exists {
		return cerr.AlreadyExistsf("army %s already registered", a.ArmyID).
			WithMeta("army_id", string(a.ArmyID))
	}
	w.armies[a.ArmyID] = a
	return nil
}

// Army resolves an army id, nil when unresolved.
func (w *World) Army(id shared.ArmyID) *army.Army {
	if id.None() {
		return nil
	}
	return w.armies[id]
}

// RemoveArmy disbands an army, dropping it from the registry.
func (w *World) RemoveArmy(id shared.ArmyID) {
	delete(w.armies, id)
}

// AddSiege registers a siege.
func (w *World) AddSiege(s *army.Siege) {
	if s == nil {
		return
	}
	w.sieges[s.ID] = s
}

// Siege resolves a siege id, nil when unresolved.
func (w *World) Siege(id shared.SiegeID) *army.Siege {
	if id == "" {
		return nil
	}
	return w.sieges[id]
}

// EndSiege removes a siege and clears the besieged fief's siege mark.
func (w *World) EndSiege(id shared.SiegeID) {
	s := w.Siege(id)
	if s == nil {
		return
	}
	if f := w.Fief(s.Fief); f != nil && f.SiegeID == id {
		f.SiegeID = ""
	}
	delete(w.sieges, id)
}

// Victories returns the victory record for a character, creating it on
// first access.
func (w *World) Victories(id shared.CharacterID) *VictoryRecord {
	v, ok := w.victories[id]
	if !ok {
		v = &VictoryRecord{}
		w.victories[id] = v
	}
	return v
}

// DropVictories removes a character's victory record.
func (w *World) DropVictories(id shared.CharacterID) {
	delete(w.victories, id)
}
