package shared

// Typed identifiers for the world registries. Relationships between
// entities are always stored as ids and resolved through the World
// context, never as direct pointers.

// CharacterID identifies a character in the character registry.
type CharacterID string

// PlaceID identifies a fief, province or kingdom in the place registry.
type PlaceID string

// ArmyID identifies an army in the army registry.
type ArmyID string

// SiegeID identifies an active siege.
type SiegeID string

// PlayerID identifies a player account/session.
type PlayerID string

// None reports whether the id is unset.
func (id CharacterID) None() bool { return id == "" }

// None reports whether the id is unset.
func (id PlaceID) None() bool { return id == "" }

// None reports whether the id is unset.
func (id ArmyID) None() bool { return id == "" }
