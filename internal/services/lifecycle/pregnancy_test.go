package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/testutils"
)

// marry registers a wife born in the given year and links the couple
// directly.
func marry(t *testing.T, h *harness, bornYear int) *character.Character {
	t.Helper()

	king := h.world.Character("chr_king")
	wife := testutils.CreateTestNPC("chr_wife", "Maud", shared.SexFemale)
	wife.Born = shared.Date{Year: bornYear, Season: shared.SeasonSpring}
	wife.FamilyHead = king.ID
	wife.Location = "fief_1"
	require.NoError(t, h.world.AddCharacter(wife))
	h.world.Fief("fief_1").AddCharacter(wife.ID)

	wife.Spouse = king.ID
	king.Spouse = wife.ID
	return wife
}

func TestGetSpousePregnant(t *testing.T) {
	ctx := context.Background()

	t.Run("unmarried", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.GetSpousePregnant(ctx, "chr_king")
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, lifecycle.MsgNotMarried, out.Code)
	})

	t.Run("conceives at a ten percent draw", func(t *testing.T) {
		h := newHarness(t)
		// Wife at 25: both virility 5, prime band, chance 10.
		wife := marry(t, h, 1295)
		king := h.world.Character("chr_king")

		h.rand.SetNextValue(9.9)
		out, err := h.svc.GetSpousePregnant(ctx, king.ID)
		require.NoError(t, err)
		require.True(t, out.Success, out.Code)
		assert.Equal(t, lifecycle.MsgPregnancySuccess, out.Code)

		assert.True(t, wife.Pregnant)
		assert.InDelta(t, 29, king.Days, 1e-9)
		assert.InDelta(t, 29, wife.Days, 1e-9)

		ev := h.sched.FindFor(journal.EventBirth, wife.ID)
		require.NotNil(t, ev)
		assert.True(t, ev.Due.Equal(testutils.StartDate.Next()))
		assert.Equal(t, king.ID, ev.Participant("father"))
	})

	t.Run("misses above the chance", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1295)

		h.rand.SetNextValue(10)
		out, err := h.svc.GetSpousePregnant(ctx, "chr_king")
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, lifecycle.MsgPregnancyFailed, out.Code)
		assert.False(t, wife.Pregnant)
		assert.Zero(t, h.sched.Len())
	})

	t.Run("outside the fertile ages no draw happens", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1260) // 60 years old
		king := h.world.Character("chr_king")

		out, err := h.svc.GetSpousePregnant(ctx, king.ID)
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, lifecycle.MsgPregnancyFailed, out.Code)
		assert.False(t, wife.Pregnant)

		// The attempt still cost a day.
		assert.InDelta(t, 29, king.Days, 1e-9)
	})

	t.Run("already pregnant", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1295)
		wife.Pregnant = true

		out, err := h.svc.GetSpousePregnant(ctx, "chr_king")
		require.NoError(t, err)
		assert.Equal(t, lifecycle.MsgPregnancyFailed, out.Code)
	})
}

func TestGiveBirth(t *testing.T) {
	ctx := context.Background()

	conceive := func(t *testing.T, h *harness, wife *character.Character) *journal.ScheduledEvent {
		t.Helper()
		h.rand.SetNextValue(1)
		out, err := h.svc.GetSpousePregnant(ctx, "chr_king")
		require.NoError(t, err)
		require.True(t, out.Success, out.Code)
		return h.sched.FindFor(journal.EventBirth, wife.ID)
	}

	// Newborn draws: sex, name pick, max health, virility, management,
	// combat. The stillbirth check always consumes one more draw since
	// a newborn's health sits far below ten.
	newbornDraws := func(h *harness, stillbirthDraw float64) {
		for _, v := range []float64{60, 3, 10, 5, 5, 5, stillbirthDraw} {
			h.rand.SetNextValue(v)
		}
	}

	t.Run("healthy child joins the household", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1295)
		king := h.world.Character("chr_king")
		ev := conceive(t, h, wife)

		newbornDraws(h, 95) // survives; the mother at full health rolls nothing
		out, err := h.svc.GiveBirth(ctx, ev)
		require.NoError(t, err)
		require.True(t, out.Success, out.Code)
		assert.Equal(t, lifecycle.MsgBirth, out.Code)
		assert.False(t, wife.Pregnant)

		child := h.world.Character("chr_test-1")
		require.NotNil(t, child)
		assert.Equal(t, wife.ID, child.Mother)
		assert.Equal(t, king.ID, child.Father)
		assert.Equal(t, king.ID, child.FamilyHead)
		assert.Equal(t, shared.PlaceID("fief_1"), child.Location)
		assert.True(t, h.world.Fief("fief_1").HasCharacter(child.ID))
		assert.True(t, testutils.StartDate.Equal(child.Born))
	})

	t.Run("stillborn child is never registered", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1295)
		ev := conceive(t, h, wife)

		newbornDraws(h, 1) // lost
		out, err := h.svc.GiveBirth(ctx, ev)
		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, lifecycle.MsgBirthStillborn, out.Code)

		assert.Nil(t, h.world.Character("chr_test-1"))
		assert.False(t, wife.Pregnant)
	})

	t.Run("frail mother can die in childbirth", func(t *testing.T) {
		h := newHarness(t)
		wife := marry(t, h, 1295)
		// An unplayed player character so her death resolves without
		// further draws; health 8 gives a 7.5 percent childbed risk.
		wife.MaxHealth = 8
		wife.Kind = character.PlayerKind(&character.PlayerState{})
		ev := conceive(t, h, wife)

		newbornDraws(h, 95)    // the child lives
		h.rand.SetNextValue(1) // the mother does not
		out, err := h.svc.GiveBirth(ctx, ev)
		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, lifecycle.MsgBirthMotherDied, out.Code)
		assert.False(t, wife.Alive)

		child := h.world.Character("chr_test-1")
		require.NotNil(t, child)
		assert.True(t, child.Alive)
	})
}
