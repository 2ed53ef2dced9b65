package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/services/lifecycle"
)

func TestMoveCharacter(t *testing.T) {
	ctx := context.Background()

	t.Run("one fief for one day", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")

		out, err := h.svc.MoveCharacter(ctx, king.ID, "fief_2")
		require.NoError(t, err)
		require.True(t, out.Success, out.Code)
		assert.Equal(t, lifecycle.MsgMoved, out.Code)

		assert.Equal(t, shared.PlaceID("fief_2"), king.Location)
		assert.True(t, h.world.Fief("fief_2").HasCharacter(king.ID))
		assert.False(t, h.world.Fief("fief_1").HasCharacter(king.ID))
		assert.InDelta(t, 29, king.Days, 1e-9)
	})

	t.Run("the entourage rides along", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")
		npc := h.world.Character("chr_npc")
		st, _ := king.Player()
		st.AddToEntourage(npc.ID)
		npc.Employer = king.ID

		_, err := h.svc.MoveCharacter(ctx, king.ID, "fief_3")
		require.NoError(t, err)
		assert.Equal(t, shared.PlaceID("fief_3"), npc.Location)
		assert.True(t, h.world.Fief("fief_3").HasCharacter(npc.ID))
	})

	t.Run("a posted bailiff stays behind", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")
		npc := h.world.Character("chr_npc")
		st, _ := king.Player()
		st.AddToEntourage(npc.ID)
		h.world.Fief("fief_1").BailiffID = npc.ID

		_, err := h.svc.MoveCharacter(ctx, king.ID, "fief_2")
		require.NoError(t, err)
		assert.Equal(t, shared.PlaceID("fief_1"), npc.Location)
	})

	t.Run("unknown destination", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.MoveCharacter(ctx, "chr_king", "atlantis")
		require.NoError(t, err)
		assert.Equal(t, lifecycle.MsgUnknownPlace, out.Code)
	})

	t.Run("already there", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.MoveCharacter(ctx, "chr_king", "fief_1")
		require.NoError(t, err)
		assert.Equal(t, lifecycle.MsgWrongLocation, out.Code)
	})

	t.Run("a besieged keep cannot be left", func(t *testing.T) {
		h := newHarness(t)
		h.world.Fief("fief_1").SiegeID = "siege_1"

		out, err := h.svc.MoveCharacter(ctx, "chr_king", "fief_2")
		require.NoError(t, err)
		assert.Equal(t, lifecycle.MsgWrongLocation, out.Code)
	})
}

func TestSetRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("queues the stops", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")

		out, err := h.svc.SetRoute(ctx, king.ID, []shared.PlaceID{"fief_2", "fief_3"})
		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, lifecycle.MsgRouteSet, out.Code)
		assert.Equal(t, 2, out.Fields["stops"])
		assert.Equal(t, []shared.PlaceID{"fief_2", "fief_3"}, king.Route)
	})

	t.Run("unknown stop", func(t *testing.T) {
		h := newHarness(t)
		out, err := h.svc.SetRoute(ctx, "chr_king", []shared.PlaceID{"fief_2", "atlantis"})
		require.NoError(t, err)
		assert.Equal(t, lifecycle.MsgUnknownPlace, out.Code)
	})

	t.Run("arrival consumes the head of the route", func(t *testing.T) {
		h := newHarness(t)
		king := h.world.Character("chr_king")

		_, err := h.svc.SetRoute(ctx, king.ID, []shared.PlaceID{"fief_2", "fief_3"})
		require.NoError(t, err)

		_, err = h.svc.MoveCharacter(ctx, king.ID, "fief_2")
		require.NoError(t, err)
		assert.Equal(t, []shared.PlaceID{"fief_3"}, king.Route)
	})
}
