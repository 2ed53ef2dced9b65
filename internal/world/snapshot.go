package world

import (
	"sort"

	"github.com/talgard/crownlands/internal/domain/army"
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Snapshot is the full persistable state of a world, split into the
// concrete entity kinds so repositories can serialize each with its own
// shape. Slices are id-sorted for stable output.
type Snapshot struct {
	Now shared.Date `json:"now"`

	Characters []*character.Character `json:"characters"`
	Fiefs      []*place.Fief          `json:"fiefs"`
	Provinces  []*place.Province      `json:"provinces"`
	Kingdoms   []*place.Kingdom       `json:"kingdoms"`
	Armies     []*army.Army           `json:"armies"`
	Sieges     []*army.Siege          `json:"sieges"`

	Sessions   []*Session                            `json:"sessions,omitempty"`
	Victories  map[shared.CharacterID]*VictoryRecord `json:"victories,omitempty"`
	Challenges []*Challenge                          `json:"challenges,omitempty"`
}

// Snapshot captures the world state for persistence. Callers hold the
// exclusive section; the engine snapshots between sweeps.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Now:       w.Now,
		Victories: make(map[shared.CharacterID]*VictoryRecord, len(w.victories)),
	}

	for _, c := range w.characters {
		snap.Characters = append(snap.Characters, c)
	}
	sort.Slice(snap.Characters, func(i, j int) bool { return snap.Characters[i].ID < snap.Characters[j].ID })

	for _, p := range w.places {
		switch v := p.(type) {
		case *place.Fief:
			snap.Fiefs = append(snap.Fiefs, v)
		case *place.Province:
			snap.Provinces = append(snap.Provinces, v)
		case *place.Kingdom:
			snap.Kingdoms = append(snap.Kingdoms, v)
		}
	}
	sort.Slice(snap.Fiefs, func(i, j int) bool { return snap.Fiefs[i].ID() < snap.Fiefs[j].ID() })
	sort.Slice(snap.Provinces, func(i, j int) bool { return snap.Provinces[i].ID() < snap.Provinces[j].ID() })
	sort.Slice(snap.Kingdoms, func(i, j int) bool { return snap.Kingdoms[i].ID() < snap.Kingdoms[j].ID() })

	for _, a := range w.armies {
		snap.Armies = append(snap.Armies, a)
	}
	sort.Slice(snap.Armies, func(i, j int) bool { return snap.Armies[i].ArmyID < snap.Armies[j].ArmyID })

	for _, s := range w.sieges {
		snap.Sieges = append(snap.Sieges, s)
	}
	sort.Slice(snap.Sieges, func(i, j int) bool { return snap.Sieges[i].ID < snap.Sieges[j].ID })

	for _, s := range w.sessions {
		snap.Sessions = append(snap.Sessions, s)
	}
	sort.Slice(snap.Sessions, func(i, j int) bool { return snap.Sessions[i].PlayerID < snap.Sessions[j].PlayerID })

	for id, v := range w.victories {
		snap.Victories[id] = v
	}

	for _, c := range w.challenges {
		snap.Challenges = append(snap.Challenges, c)
	}
	sort.Slice(snap.Challenges, func(i, j int) bool { return snap.Challenges[i].ID < snap.Challenges[j].ID })

	return snap
}

// Restore builds a world from a snapshot.
func Restore(snap *Snapshot) *World {
	w := New(snap.Now)

	for _, c := range snap.Characters {
		w.characters[c.ID] = c
	}
	for _, f := range snap.Fiefs {
		w.places[f.ID()] = f
	}
	for _, p := range snap.Provinces {
		w.places[p.ID()] = p
	}
	for _, k := range snap.Kingdoms {
		w.places[k.ID()] = k
	}
	for _, a := range snap.Armies {
		w.armies[a.ArmyID] = a
	}
	for _, s := range snap.Sieges {
		w.sieges[s.ID] = s
	}
	for _, s := range snap.Sessions {
		// Connections never survive a restore.
		s.Connected = false
		w.sessions[s.PlayerID] = s
	}
	for id, v := range snap.Victories {
		w.victories[id] = v
	}
	for _, c := range snap.Challenges {
		w.challenges[c.ID] = c
	}
	return w
}
