// Package character holds the character entity: identity, vitality,
// standing, and the id-based relationship fields resolved through the
// world registries. Characters never own pointers to other entities;
// cyclic relations (spouse↔spouse, head↔members) are id links only.
package character

import (
	"strings"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/domain/trait"

	cerr "github.com/talgard/crownlands/internal/errors"
)

// Character is a single player- or non-player character record.
// Records are never deleted; death clears Alive and the record stays
// resolvable for genealogy and journal history.
type Character struct {
	ID         shared.CharacterID `json:"id"`
	FirstName  string             `json:"first_name"`
	FamilyName string             `json:"family_name"`
	Sex        shared.Sex         `json:"sex"`
	Born       shared.Date        `json:"born"`
	Nation     string             `json:"nation"`
	Language   string             `json:"language"`
	Alive      bool               `json:"alive"`

	// Vitality
	MaxHealth float64    `json:"max_health"`
	Virility  float64    `json:"virility"`
	Ailments  []*Ailment `json:"ailments,omitempty"`
	Pregnant  bool       `json:"pregnant"`

	// Standing
	BaseManagement  float64         `json:"base_management"`
	BaseCombat      float64         `json:"base_combat"`
	StatureModifier float64         `json:"stature_modifier"`
	Traits          []trait.Holding `json:"traits,omitempty"`

	// Relationships, all weak id references
	Father     shared.CharacterID `json:"father,omitempty"`
	Mother     shared.CharacterID `json:"mother,omitempty"`
	Spouse     shared.CharacterID `json:"spouse,omitempty"`
	Fiancee    shared.CharacterID `json:"fiancee,omitempty"`
	FamilyHead shared.CharacterID `json:"family_head,omitempty"`
	Employer   shared.CharacterID `json:"employer,omitempty"`
	Captor     shared.CharacterID `json:"captor,omitempty"`
	Army       shared.ArmyID      `json:"army,omitempty"`
	Titles     []shared.PlaceID   `json:"titles,omitempty"`
	Location   shared.PlaceID     `json:"location,omitempty"`
	Route      []shared.PlaceID   `json:"route,omitempty"`

	// RansomDemand references the journal entry of an open ransom
	// demand for this captive, 0 when none.
	RansomDemand int64 `json:"ransom_demand,omitempty"`

	// Days remaining in the current season, in [0, allowance].
	Days float64 `json:"days"`

	Kind Kind `json:"kind"`
}

// New validates the static fields that make a record constructible.
// Anything else is gated later by precondition checks, not here.
func New(id shared.CharacterID, firstName, familyName string, sex shared.Sex, born shared.Date, maxHealth float64) (*Character, error) {
	if id == "" {
		return nil, cerr.Validation("character id is required")
	}
	if strings.ContainsRune(string(id), '|') {
		// Persona strings join character id and role on '|'.
		return nil, cerr.Validationf("character id %q contains '|'", id).
			WithMeta("character_id", string(id))
	}
	if sex != shared.SexMale && sex != shared.SexFemale {
		return nil, cerr.Validationf("invalid sex %q", sex)
	}
	if maxHealth <= 0 {
		return nil, cerr.Validationf("max health must be positive, got %v", maxHealth).
			WithMeta("character_id", string(id))
	}

	return &Character{
		ID:         id,
		FirstName:  firstName,
		FamilyName: familyName,
		Sex:        sex,
		Born:       born,
		MaxHealth:  maxHealth,
		Alive:      true,
	}, nil
}

// Name returns the display name.
func (c *Character) Name() string {
	if c.FamilyName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.FamilyName
}

// Captive reports whether the character is held by a captor.
func (c *Character) Captive() bool { return !c.Captor.None() }

// HoldsTitle reports whether the character holds the title of the place.
func (c *Character) HoldsTitle(id shared.PlaceID) bool {
	for _, t := range c.Titles {
		if t == id {
			return true
		}
	}
	return false
}

// AddTitle records a held title, ignoring duplicates.
func (c *Character) AddTitle(id shared.PlaceID) {
	if c.HoldsTitle(id) {
		return
	}
	c.Titles = append(c.Titles, id)
}

// RemoveTitle drops a held title if present.
func (c *Character) RemoveTitle(id shared.PlaceID) {
	for i, t := range c.Titles {
		if t == id {
			c.Titles = append(c.Titles[:i], c.Titles[i+1:]...)
			return
		}
	}
}

// TraitLevel returns the held level of the trait, 0 if not held.
func (c *Character) TraitLevel(key string) int {
	for _, h := range c.Traits {
		if h.Trait != nil && h.Trait.Key == key {
			return h.Level
		}
	}
	return 0
}

// TraitEffect sums the level-scaled contributions of every held trait
// to the named stat.
func (c *Character) TraitEffect(stat shared.Stat) float64 {
	var total float64
	for _, h := range c.Traits {
		total += h.Effect(stat)
	}
	return total
}

// Validate checks the cross-field invariants that mutators must
// maintain. Used by tests and the world loader.
func (c *Character) Validate() error {
	if !c.FamilyHead.None() && !c.Employer.None() {
		return cerr.Validationf("character %s is both family member and employee", c.ID).
			WithMeta("character_id", string(c.ID))
	}
	if c.Pregnant && c.Sex != shared.SexFemale {
		return cerr.Validationf("character %s is pregnant but not female", c.ID).
			WithMeta("character_id", string(c.ID))
	}
	if c.Days < 0 {
		return cerr.Validationf("character %s has negative days", c.ID).
			WithMeta("character_id", string(c.ID))
	}
	return nil
}
