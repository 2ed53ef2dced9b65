package stats

import (
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
)

// ArmorBonus is the fixed armor contribution to combat value.
const ArmorBonus = 2

// LeadershipContext selects which trait scales a leadership value.
type LeadershipContext int

const (
	FieldBattle LeadershipContext = iota
	SiegeWork
)

// scale applies a trait-derived multiplier: x * (1 + m).
func scale(x, m float64) float64 {
	return x * (1 + m)
}

// FiefManagementRating rates a character as a fief manager:
// (management + stature)/2 scaled by the loyalty-vs-expense trait
// differential.
func FiefManagementRating(c *character.Character, now shared.Date, rankStature float64) float64 {
	base := (c.BaseManagement + Stature(c, now, rankStature, Current)) / 2
	return scale(base, c.TraitEffect(shared.StatFiefLoy)-c.TraitEffect(shared.StatFiefExpense))
}

// ArmyLeadershipRating rates a character as an army leader:
// (management + stature + combat)/3 scaled by battle and siege traits.
func ArmyLeadershipRating(c *character.Character, now shared.Date, rankStature float64) float64 {
	base := (c.BaseManagement + Stature(c, now, rankStature, Current) + c.BaseCombat) / 3
	return scale(base, c.TraitEffect(shared.StatBattle)+c.TraitEffect(shared.StatSiege))
}

// LeadershipValue rates leadership in a specific context:
// (combat + management + stature)/3 scaled by the battle or siege
// trait depending on context.
func LeadershipValue(c *character.Character, now shared.Date, rankStature float64, ctx LeadershipContext) float64 {
	base := (c.BaseCombat + c.BaseManagement + Stature(c, now, rankStature, Current)) / 3
	stat := shared.StatBattle
	if ctx == SiegeWork {
		stat = shared.StatSiege
	}
	return scale(base, c.TraitEffect(stat))
}

// CombatValue rates personal combat strength: (combat + health)/2 plus
// the fixed armor bonus and a caller-supplied nationality bonus.
func CombatValue(c *character.Character, now shared.Date, mode Mode, nationalityBonus float64) float64 {
	return (c.BaseCombat+Health(c, now, mode))/2 + ArmorBonus + nationalityBonus
}

// SalaryDemand is what an NPC asks to be hired for: the larger of a
// trait-based estimate and a floor derived from the current salary,
// adjusted by the stature differential between the current employer
// and the would-be hirer. A higher-stature hirer pays less.
func SalaryDemand(npc *character.Character, now shared.Date, rankStature, hirerStature, employerStature float64) float64 {
	estimate := scale(LeadershipValue(npc, now, rankStature, FieldBattle)*10, npc.TraitEffect(shared.StatNPCHire))

	var floor float64
	if st, ok := npc.NonPlayer(); ok {
		floor = float64(st.Salary) * 1.1
	}

	demand := estimate
	if floor > demand {
		demand = floor
	}

	demand *= 1 + (employerStature-hirerStature)*0.05
	if demand < 1 {
		demand = 1
	}
	return demand
}

// EstimateVariance is the relative error band a scout's reports carry:
// 0.05 + (10 - leadership) * 0.05, flooring leadership at 0.
func EstimateVariance(leadership float64) float64 {
	if leadership > 10 {
		leadership = 10
	}
	if leadership < 0 {
		leadership = 0
	}
	return 0.05 + (10-leadership)*0.05
}
