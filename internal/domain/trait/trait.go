// Package trait defines the catalog of character traits and the
// level-scaled effects they contribute to named stat channels.
package trait

import (
	"github.com/talgard/crownlands/internal/domain/shared"

	cerr "github.com/talgard/crownlands/internal/errors"
)

// MaxLevel is the saturation point for trait levels. A trait held at
// MaxLevel contributes its full declared effect.
const MaxLevel = 9

// Trait is a named modifier source with per-stat effect magnitudes.
type Trait struct {
	Key     string                  `json:"key"`
	Name    string                  `json:"name"`
	Effects map[shared.Stat]float64 `json:"effects"`
}

// Holding pairs a trait with the level (1-9) a character holds it at.
type Holding struct {
	Trait *Trait `json:"trait"`
	Level int    `json:"level"`
}

// NewHolding validates the level range at construction.
func NewHolding(t *Trait, level int) (Holding, error) {
	if t == nil {
		return Holding{}, cerr.InvalidArgument("trait cannot be nil")
	}
	if level < 1 || level > MaxLevel {
		return Holding{}, cerr.Validationf("trait level %d outside [1,%d]", level, MaxLevel).
			WithMeta("trait", t.Key).
			WithMeta("level", level)
	}
	return Holding{Trait: t, Level: level}, nil
}

// Effect returns the holding's contribution to the named stat:
// the trait's declared effect scaled by level/9, saturating at 1.0.
func (h Holding) Effect(stat shared.Stat) float64 {
	if h.Trait == nil {
		return 0
	}
	eff, ok := h.Trait.Effects[stat]
	if !ok {
		return 0
	}
	scale := float64(h.Level) / float64(MaxLevel)
	if scale > 1 {
		scale = 1
	}
	return eff * scale
}

// Catalog of well-known traits. World load may extend it; these cover
// the channels the stat calculus reads.
var (
	Warrior = &Trait{Key: "warrior", Name: "Warrior", Effects: map[shared.Stat]float64{
		shared.StatBattle: 0.5, shared.StatSiege: 0.2,
	}}
	Engineer = &Trait{Key: "engineer", Name: "Engineer", Effects: map[shared.Stat]float64{
		shared.StatSiege: 0.5,
	}}
	Shadow = &Trait{Key: "shadow", Name: "Shadow", Effects: map[shared.Stat]float64{
		shared.StatStealth: 0.6, shared.StatPerception: 0.2,
	}}
	Watchful = &Trait{Key: "watchful", Name: "Watchful", Effects: map[shared.Stat]float64{
		shared.StatPerception: 0.6,
	}}
	Beloved = &Trait{Key: "beloved", Name: "Beloved", Effects: map[shared.Stat]float64{
		shared.StatFiefLoy: 0.4, shared.StatNPCHire: -0.2,
	}}
	Profligate = &Trait{Key: "profligate", Name: "Profligate", Effects: map[shared.Stat]float64{
		shared.StatFiefExpense: 0.4,
	}}
	Sickly = &Trait{Key: "sickly", Name: "Sickly", Effects: map[shared.Stat]float64{
		shared.StatDeath: 0.5,
	}}
	Tireless = &Trait{Key: "tireless", Name: "Tireless", Effects: map[shared.Stat]float64{
		shared.StatTime: 0.3,
	}}
)

// All lists the built-in catalog, used when seeding respawned NPCs.
func All() []*Trait {
	return []*Trait{Warrior, Engineer, Shadow, Watchful, Beloved, Profligate, Sickly, Tireless}
}
