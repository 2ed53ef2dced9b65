package challenge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	mockrandom "github.com/talgard/crownlands/internal/random/mock"
	"github.com/talgard/crownlands/internal/services/challenge"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/testutils"
	"github.com/talgard/crownlands/internal/uuid"
	"github.com/talgard/crownlands/internal/world"
)

type harness struct {
	world *world.World
	svc   challenge.Service
	past  *journal.Journal
	duke  *character.Character
}

// newHarness builds the fixture world plus a rival duke (player p2)
// holding two of province_1's three fiefs.
func newHarness(t *testing.T) *harness {
	t.Helper()

	w := testutils.CreateTestWorld()
	sched := journal.NewScheduler()
	past := journal.NewJournal(&journal.Config{Roster: w})
	ids := &uuid.SequentialGenerator{Prefix: "chg"}

	lc := lifecycle.NewService(&lifecycle.ServiceConfig{
		World:     w,
		Journal:   past,
		Scheduler: sched,
		Random:    mockrandom.NewManualSource(),
		IDs:       ids,
	})
	svc := challenge.NewService(&challenge.ServiceConfig{
		World:     w,
		Journal:   past,
		Lifecycle: lc,
		IDs:       ids,
	})

	duke := testutils.CreateTestPC("chr_duke", "Baldric", "p2")
	duke.Location = "fief_2"
	require.NoError(t, w.AddCharacter(duke))
	w.Fief("fief_2").AddCharacter(duke.ID)

	king := w.Character("chr_king")
	kst, _ := king.Player()
	dst, _ := duke.Player()
	for _, id := range []shared.PlaceID{"fief_2", "fief_3"} {
		f := w.Fief(id)
		kst.RemoveFief(id)
		king.RemoveTitle(id)
		f.TransferOwnership(duke.ID)
		f.SetTitleHolder(duke.ID)
		dst.AddFief(id)
		duke.AddTitle(id)
	}

	return &harness{world: w, svc: svc, past: past, duke: duke}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("opens against a province", func(t *testing.T) {
		h := newHarness(t)

		out, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)
		require.True(t, out.Success, out.Code)
		assert.Equal(t, challenge.MsgChallengeOpened, out.Code)
		assert.InDelta(t, 29, h.duke.Days, 1e-9)

		ch := h.world.ChallengeFor("province_1")
		require.NotNil(t, ch)
		assert.Equal(t, world.ChallengeProvince, ch.Kind)
		assert.Equal(t, h.duke.ID, ch.Challenger)
	})

	t.Run("one challenge per place", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)

		out, err := h.svc.Open(ctx, "chr_npc", "province_1")
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, challenge.MsgChallengeExists, out.Code)
	})

	t.Run("owners cannot challenge themselves", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.Open(ctx, "chr_king", "province_1")
		require.NoError(t, err)
		assert.Equal(t, challenge.MsgChallengeOwnPlace, out.Code)
	})

	t.Run("only provinces and kingdoms are contestable", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.Open(ctx, h.duke.ID, "fief_1")
		require.NoError(t, err)
		assert.Equal(t, challenge.MsgChallengeBadPlace, out.Code)
	})
}

func TestTick(t *testing.T) {
	ctx := context.Background()

	t.Run("four majority seasons take the province", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")
		_, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)

		for i := 0; i < challenge.SeasonsToWin-1; i++ {
			require.NoError(t, h.svc.Tick(ctx))
			require.NotNil(t, h.world.ChallengeFor("province_1"), "season %d", i)
		}
		require.NoError(t, h.svc.Tick(ctx))

		assert.Nil(t, h.world.ChallengeFor("province_1"))
		province := h.world.Province("province_1")
		assert.Equal(t, h.duke.ID, province.Owner())
		assert.Equal(t, h.duke.ID, province.TitleHolder())
		assert.True(t, h.duke.HoldsTitle("province_1"))
		assert.False(t, king.HoldsTitle("province_1"))

		dst, _ := h.duke.Player()
		assert.True(t, dst.OwnsProvince("province_1"))
		kst, _ := king.Player()
		assert.False(t, kst.OwnsProvince("province_1"))

		entries := h.past.Entries()
		require.NotEmpty(t, entries)
		assert.Equal(t, journal.EventChallengeSucceeded, entries[len(entries)-1].Type)
		assert.InDelta(t, challenge.StatureSwing, h.duke.StatureModifier, 1e-9)
	})

	t.Run("losing the majority fails the challenge", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)

		require.NoError(t, h.svc.Tick(ctx))

		// The king wins fief_3 back; one of three is no majority.
		dst, _ := h.duke.Player()
		dst.RemoveFief("fief_3")
		h.world.Fief("fief_3").TransferOwnership("chr_king")

		require.NoError(t, h.svc.Tick(ctx))
		assert.Nil(t, h.world.ChallengeFor("province_1"))
		assert.Equal(t, shared.CharacterID("chr_king"), h.world.Province("province_1").Owner())

		entries := h.past.Entries()
		assert.Equal(t, journal.EventChallengeFailed, entries[len(entries)-1].Type)
		assert.InDelta(t, -challenge.StatureSwing, h.duke.StatureModifier, 1e-9)
	})

	t.Run("a landless challenger fails immediately", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)

		dst, _ := h.duke.Player()
		dst.Fiefs = nil

		require.NoError(t, h.svc.Tick(ctx))
		assert.Nil(t, h.world.ChallengeFor("province_1"))
	})

	t.Run("death drops the challenge quietly", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Open(ctx, h.duke.ID, "province_1")
		require.NoError(t, err)

		h.duke.Alive = false
		entriesBefore := len(h.past.Entries())

		require.NoError(t, h.svc.Tick(ctx))
		assert.Nil(t, h.world.ChallengeFor("province_1"))
		assert.Len(t, h.past.Entries(), entriesBefore)
	})

	t.Run("kingdom challenges count provinces", func(t *testing.T) {
		h := newHarness(t)
		dst, _ := h.duke.Player()
		dst.AddProvince("province_1")

		_, err := h.svc.Open(ctx, h.duke.ID, "kingdom_1")
		require.NoError(t, err)

		for i := 0; i < challenge.SeasonsToWin; i++ {
			require.NoError(t, h.svc.Tick(ctx))
		}

		kingdom := h.world.Kingdom("kingdom_1")
		assert.Equal(t, h.duke.ID, kingdom.Owner())
		assert.True(t, h.duke.HoldsTitle("kingdom_1"))
	})
}
