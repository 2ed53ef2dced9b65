// Package stats is the pure derived-stat calculus. Every function is
// side-effect-free over a character snapshot; world lookups (like the
// stature value of held titles) are passed in by the caller.
package stats

import (
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Mode selects whether mutable state (stature modifier, ailments)
// participates in a derivation.
type Mode int

const (
	// Base ignores the mutable modifier and active ailments.
	Base Mode = iota
	// Current includes them.
	Current
)

// Stature bounds.
const (
	MinStature = 1
	MaxStature = 9
)

// Age in whole years at the given date: the year difference, minus one
// when the birth season has not been reached yet.
func Age(c *character.Character, now shared.Date) int {
	age := now.Year - c.Born.Year
	if now.Season < c.Born.Season {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// statureAgeBonus is the age band bonus added to rank stature.
func statureAgeBonus(age int) float64 {
	switch {
	case age <= 10:
		return 0
	case age <= 20:
		return 0.5
	case age <= 30:
		return 1
	case age <= 40:
		return 2
	case age <= 50:
		return 3
	case age <= 60:
		return 4
	default:
		return 5
	}
}

// Stature derives standing from the rank-derived base (the stature
// value of the highest-ranked held title), the age band bonus, the sex
// penalty, and — in Current mode — the mutable modifier. The result is
// clamped to [1,9].
func Stature(c *character.Character, now shared.Date, rankStature float64, mode Mode) float64 {
	s := rankStature + statureAgeBonus(Age(c, now))
	if c.Sex == shared.SexFemale {
		s -= 6
	}
	if mode == Current {
		s += c.StatureModifier
	}
	return clamp(s, MinStature, MaxStature)
}

// CapModifierDelta restricts a stature-modifier delta so the resulting
// current stature stays within [1,9]. Used when the world-level
// stature cap is enabled.
func CapModifierDelta(c *character.Character, now shared.Date, rankStature, delta float64) float64 {
	uncapped := rankStature + statureAgeBonus(Age(c, now))
	if c.Sex == shared.SexFemale {
		uncapped -= 6
	}
	after := uncapped + c.StatureModifier + delta
	if after > MaxStature {
		delta -= after - MaxStature
	} else if after < MinStature {
		delta += MinStature - after
	}
	return delta
}

// healthAgeFactor is the fixed 11-band age curve, peaking at 1.0 for
// ages 20-34 and tapering toward infancy and old age.
func healthAgeFactor(age int) float64 {
	switch {
	case age <= 2:
		return 0.30
	case age <= 6:
		return 0.55
	case age <= 10:
		return 0.75
	case age <= 14:
		return 0.85
	case age <= 19:
		return 0.95
	case age <= 34:
		return 1.00
	case age <= 44:
		return 0.95
	case age <= 54:
		return 0.85
	case age <= 64:
		return 0.70
	case age <= 74:
		return 0.55
	default:
		return 0.35
	}
}

// Health derives current or base health: max health scaled by the age
// curve, minus active ailment effects in Current mode, clamped to
// [0, maxHealth].
func Health(c *character.Character, now shared.Date, mode Mode) float64 {
	h := c.MaxHealth * healthAgeFactor(Age(c, now))
	if mode == Current {
		h -= c.AilmentTotal()
	}
	return clamp(h, 0, c.MaxHealth)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
