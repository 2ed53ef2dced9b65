package stats

import (
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/random"
)

// DeathContext selects the multiplier applied to a death check.
type DeathContext int

const (
	// NaturalDeath is the plain seasonal check.
	NaturalDeath DeathContext = iota
	// ChildbirthDeath is a birth-related check (x1.5).
	ChildbirthDeath
	// StillbirthMaternalDeath is the maternal recheck after a
	// stillbirth (x2).
	StillbirthMaternalDeath
)

// Per-health-point-below-10 base chances, in percent.
const (
	maleDeathBase   = 2.8
	femaleDeathBase = 2.5
)

// DeathChance is the percent chance the character dies this check:
// (10 - health) points below ten, each worth the sex-specific base,
// scaled by the DEATH trait and the context multiplier.
func DeathChance(c *character.Character, now shared.Date, ctx DeathContext) float64 {
	health := Health(c, now, Current)
	if health >= 10 {
		return 0
	}

	base := maleDeathBase
	if c.Sex == shared.SexFemale {
		base = femaleDeathBase
	}

	chance := (10 - health) * base * (1 + c.TraitEffect(shared.StatDeath))
	switch ctx {
	case ChildbirthDeath:
		chance *= 1.5
	case StillbirthMaternalDeath:
		chance *= 2
	}
	return chance
}

// DeathRoll draws against DeathChance on the shared uniform source.
func DeathRoll(c *character.Character, now shared.Date, ctx DeathContext, src random.Source) bool {
	chance := DeathChance(c, now, ctx)
	if chance <= 0 {
		return false
	}
	return src.Percent() < chance
}

// Pregnancy age bounds for the mother.
const (
	PregnancyMinAge = 14
	PregnancyMaxAge = 55
)

// pregnancyAgeBand scales conception chance by the mother's age.
func pregnancyAgeBand(age int) float64 {
	switch {
	case age < PregnancyMinAge || age > PregnancyMaxAge:
		return 0
	case age <= 19:
		return 0.8
	case age <= 29:
		return 1.0
	case age <= 39:
		return 0.75
	case age <= 49:
		return 0.5
	default:
		return 0.25
	}
}

// PregnancyChance is the percent chance of conception: the combined
// virility of both partners scaled by the mother's age band and TIME
// trait. Zero outside the mother's fertile ages regardless of
// virility.
func PregnancyChance(mother, father *character.Character, now shared.Date) float64 {
	band := pregnancyAgeBand(Age(mother, now))
	if band == 0 {
		return 0
	}
	return (mother.Virility + father.Virility) * band * (1 + mother.TraitEffect(shared.StatTime))
}

// Covert two-stage resolution, shared by kidnap and spy attempts.

// Detection thresholds on the success/escape midpoint.
const (
	KidnapDetectThreshold = 70
	SpyDetectThreshold    = 40
	killThreshold         = 30
)

// Covert odds penalties for protected targets.
const (
	penaltyTargetPC      = 10
	penaltyFamilyMember  = 5
	penaltyInEntourage   = 10
	penaltyLeadingArmy   = 15
	covertBaseChance     = 50
	covertTraitWeight    = 50
)

// CovertTarget describes the role-specific penalties of a target.
type CovertTarget struct {
	IsPlayer    bool
	FamilyNPC   bool
	InEntourage bool
	LeadsArmy   bool
}

// CovertOdds computes the success percentage of a covert attempt from
// the stealth-minus-perception trait differential plus target
// penalties, clamped to [5,95].
func CovertOdds(actor, target *character.Character, t CovertTarget) float64 {
	diff := actor.TraitEffect(shared.StatStealth) - target.TraitEffect(shared.StatPerception)
	pct := covertBaseChance + diff*covertTraitWeight

	if t.IsPlayer {
		pct -= penaltyTargetPC
	}
	if t.FamilyNPC {
		pct -= penaltyFamilyMember
	}
	if t.InEntourage {
		pct -= penaltyInEntourage
	}
	if t.LeadsArmy {
		pct -= penaltyLeadingArmy
	}

	return clamp(pct, 5, 95)
}

// UnopposedCovertOdds computes the success percentage of a covert
// attempt with no guarding character, leaving only the actor's stealth
// in play.
func UnopposedCovertOdds(actor *character.Character) float64 {
	return clamp(covertBaseChance+actor.TraitEffect(shared.StatStealth)*covertTraitWeight, 5, 95)
}

// CovertOutcome is the resolved branch of a covert attempt.
type CovertOutcome struct {
	Success  bool
	Detected bool
	Killed   bool
}

// ResolveCovert draws independent success and escape percentages and
// derives detected/killed from their midpoint against the fixed
// thresholds. Killed only applies on failure; detected-and-killed
// collapses into the killed branch.
func ResolveCovert(successPct, detectThreshold float64, src random.Source) CovertOutcome {
	successDraw := src.Percent()
	escapeDraw := src.Percent()

	mid := (successDraw + escapeDraw) / 2
	out := CovertOutcome{
		Success:  successDraw < successPct,
		Detected: mid < detectThreshold,
	}
	if !out.Success && mid < killThreshold {
		out.Killed = true
	}
	return out
}
