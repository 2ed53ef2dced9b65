package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/journal"
	mockrandom "github.com/talgard/crownlands/internal/random/mock"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/testutils"
	"github.com/talgard/crownlands/internal/uuid"
	"github.com/talgard/crownlands/internal/world"
)

// harness wires a lifecycle service over the fixture world with a
// manual random source and sequential ids.
type harness struct {
	world *world.World
	svc   lifecycle.Service
	rand  *mockrandom.ManualSource
	past  *journal.Journal
	sched *journal.Scheduler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	w := testutils.CreateTestWorld()
	sched := journal.NewScheduler()
	past := journal.NewJournal(&journal.Config{Roster: w})
	src := mockrandom.NewManualSource()

	svc := lifecycle.NewService(&lifecycle.ServiceConfig{
		World:     w,
		Journal:   past,
		Scheduler: sched,
		Random:    src,
		IDs:       &uuid.SequentialGenerator{Prefix: "test"},
	})

	return &harness{world: w, svc: svc, rand: src, past: past, sched: sched}
}

// respawnDraws queues the draws a single NPC respawn consumes: sex,
// birth year offset, birth season, name pick, max health, virility,
// management, combat, and the respawn fief pick.
func (h *harness) respawnDraws() {
	for _, v := range []float64{60, 25, 1, 3, 10, 5, 5, 5, 0} {
		h.rand.SetNextValue(v)
	}
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() { lifecycle.NewService(nil) })
	assert.Panics(t, func() {
		lifecycle.NewService(&lifecycle.ServiceConfig{World: testutils.CreateTestWorld()})
	})
}

func TestChecksBeforeAction(t *testing.T) {
	h := newHarness(t)
	king := h.world.Character("chr_king")

	t.Run("passes for a ready character", func(t *testing.T) {
		assert.Nil(t, h.svc.ChecksBeforeAction("chr_king", 1))
	})

	t.Run("unknown character", func(t *testing.T) {
		out := h.svc.ChecksBeforeAction("chr_ghost", 1)
		require.NotNil(t, out)
		assert.Equal(t, lifecycle.MsgUnknownCharacter, out.Code)
	})

	t.Run("out of days", func(t *testing.T) {
		h.world.SetDays(king, 0.5)
		defer h.world.ResetDays(king)

		out := h.svc.ChecksBeforeAction("chr_king", 1)
		require.NotNil(t, out)
		assert.Equal(t, lifecycle.MsgNoDaysLeft, out.Code)
	})

	t.Run("captive", func(t *testing.T) {
		king.Captor = "chr_npc"
		defer func() { king.Captor = "" }()

		out := h.svc.ChecksBeforeAction("chr_king", 1)
		require.NotNil(t, out)
		assert.Equal(t, lifecycle.MsgCharacterCaptive, out.Code)
	})

	t.Run("dead", func(t *testing.T) {
		king.Alive = false
		defer func() { king.Alive = true }()

		out := h.svc.ChecksBeforeAction("chr_king", 1)
		require.NotNil(t, out)
		assert.Equal(t, lifecycle.MsgCharacterDead, out.Code)
	})
}

func TestChecksBeforeSpending(t *testing.T) {
	h := newHarness(t)

	assert.Nil(t, h.svc.ChecksBeforeSpending("chr_king", 10000))

	out := h.svc.ChecksBeforeSpending("chr_king", 10001)
	require.NotNil(t, out)
	assert.Equal(t, lifecycle.MsgNoFunds, out.Code)

	out = h.svc.ChecksBeforeSpending("chr_npc", 1)
	require.NotNil(t, out)
	assert.Equal(t, lifecycle.MsgNotAPlayer, out.Code)
}
