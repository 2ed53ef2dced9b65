package lifecycle

import (
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/stats"
)

// Thin bridges into the pure stat calculus, supplying the world-side
// inputs (current date, rank stature) the calculus keeps out of scope.

func ageAt(c *character.Character, now shared.Date) int {
	return stats.Age(c, now)
}

func (s *service) statureOf(c *character.Character) float64 {
	return stats.Stature(c, s.world.Now, s.world.RankStature(c), stats.Current)
}

func (s *service) leadershipOf(c *character.Character, ctx stats.LeadershipContext) float64 {
	return stats.LeadershipValue(c, s.world.Now, s.world.RankStature(c), ctx)
}

// covertTarget classifies a target for the odds penalties.
func (s *service) covertTarget(target *character.Character) stats.CovertTarget {
	t := stats.CovertTarget{
		IsPlayer:  target.IsPlayer(),
		LeadsArmy: !target.Army.None(),
	}
	if st, ok := target.NonPlayer(); ok {
		t.FamilyNPC = !target.FamilyHead.None()
		t.InEntourage = st.InEntourage
	}
	return t
}
