package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/testutils"
)

func TestProcessDeathGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("unknown character", func(t *testing.T) {
		out, err := h.svc.ProcessDeath(ctx, "chr_ghost", lifecycle.CauseNatural)
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, lifecycle.MsgUnknownCharacter, out.Code)
	})

	t.Run("idempotent on the alive flag", func(t *testing.T) {
		h.respawnDraws()
		out, err := h.svc.ProcessDeath(ctx, "chr_npc", lifecycle.CauseNatural)
		require.NoError(t, err)
		assert.True(t, out.Success)

		out, err = h.svc.ProcessDeath(ctx, "chr_npc", lifecycle.CauseNatural)
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, lifecycle.MsgAlreadyDead, out.Code)
	})
}

func TestProcessDeathNPCRespawn(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	npc := h.world.Character("chr_npc")

	h.respawnDraws()
	out, err := h.svc.ProcessDeath(ctx, npc.ID, lifecycle.CauseNatural)
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, lifecycle.MsgDeath, out.Code)
	assert.Equal(t, lifecycle.MsgRespawn, out.Fields["succession"])
	assert.Equal(t, "npc", out.Fields["role"])

	assert.False(t, npc.Alive)
	assert.False(t, h.world.Fief("fief_1").HasCharacter(npc.ID))

	// The record stays resolvable for genealogy.
	assert.NotNil(t, h.world.Character("chr_npc"))

	// A fresh NPC took the vacancy.
	replacement := h.world.Character("chr_test-1")
	require.NotNil(t, replacement)
	assert.True(t, replacement.Alive)
	assert.False(t, replacement.IsPlayer())
	assert.False(t, replacement.Location.None())

	// The death made it into the journal.
	entries := h.past.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, journal.EventDeath, entries[len(entries)-1].Type)
}

func TestProcessDeathEmployee(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")
	npc := h.world.Character("chr_npc")

	npc.Employer = king.ID
	st, _ := king.Player()
	st.AddToEntourage(npc.ID)

	h.respawnDraws()
	out, err := h.svc.ProcessDeath(ctx, npc.ID, lifecycle.CauseInjury)
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, "employee", out.Fields["role"])
	assert.Equal(t, lifecycle.MsgRespawn, out.Fields["succession"])

	assert.True(t, npc.Employer.None())
	assert.False(t, st.InEntourage(npc.ID))
}

func TestProcessDeathInheritance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")

	son := testutils.CreateTestNPC("chr_son", "Aelf", shared.SexMale)
	son.Born = shared.Date{Year: 1310, Season: shared.SeasonSpring}
	son.Father = king.ID
	son.FamilyHead = king.ID
	son.Location = "fief_1"
	require.NoError(t, h.world.AddCharacter(son))
	h.world.Fief("fief_1").AddCharacter(son.ID)

	out, err := h.svc.ProcessDeath(ctx, king.ID, lifecycle.CauseNatural)
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, "player", out.Fields["role"])
	assert.Equal(t, lifecycle.MsgInheritance, out.Fields["succession"])

	// The heir is a player character now, carrying the purse and
	// holdings.
	heirState, ok := son.Player()
	require.True(t, ok)
	assert.Equal(t, shared.PlayerID("p1"), heirState.PlayerID)
	assert.Equal(t, int64(10000), heirState.Purse)
	assert.Contains(t, heirState.Fiefs, shared.PlaceID("fief_1"))
	assert.True(t, son.FamilyHead.None())

	for _, id := range []shared.PlaceID{"fief_1", "fief_2", "fief_3"} {
		f := h.world.Fief(id)
		assert.Equal(t, son.ID, f.Owner())
		assert.Equal(t, son.ID, f.AncestralOwner)
		assert.Equal(t, son.ID, f.TitleHolder())
	}
	assert.Equal(t, son.ID, h.world.Province("province_1").Owner())
	assert.True(t, son.HoldsTitle("fief_2"))

	// The crown itself passes too.
	kingdom := h.world.Kingdom("kingdom_1")
	assert.Equal(t, son.ID, kingdom.Owner())
	assert.Equal(t, son.ID, kingdom.TitleHolder())
	assert.True(t, son.HoldsTitle("kingdom_1"))
	assert.Equal(t, son.ID, h.world.KingOf(h.world.Fief("fief_1")).ID)

	// The deceased keeps nothing.
	deadState, _ := king.Player()
	assert.Empty(t, deadState.Fiefs)
	assert.Zero(t, deadState.Purse)

	// The session follows the bloodline.
	s := h.world.SessionFor("p1")
	assert.Equal(t, son.ID, s.RootCharacter)
	assert.Equal(t, son.ID, s.ActiveCharacter)
}

func TestProcessDeathEscheat(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")

	// A heirless landed player in the king's realm.
	duke := testutils.CreateTestPC("chr_duke", "Baldric", "p2")
	duke.Location = "fief_2"
	dst, _ := duke.Player()
	require.NoError(t, h.world.AddCharacter(duke))
	h.world.Fief("fief_2").AddCharacter(duke.ID)

	// Hand fief_2 over from the crown for the duration.
	f2 := h.world.Fief("fief_2")
	kst, _ := king.Player()
	kst.RemoveFief("fief_2")
	king.RemoveTitle("fief_2")
	f2.TransferOwnership(duke.ID)
	f2.SetTitleHolder(duke.ID)
	dst.AddFief("fief_2")
	duke.AddTitle("fief_2")

	out, err := h.svc.ProcessDeath(ctx, duke.ID, lifecycle.CauseNatural)
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, lifecycle.MsgEscheat, out.Fields["succession"])

	// The fief reverts to the crown.
	assert.Equal(t, king.ID, f2.Owner())
	assert.Equal(t, king.ID, f2.TitleHolder())
	assert.True(t, kst.OwnsFief("fief_2"))
	assert.True(t, king.HoldsTitle("fief_2"))
	assert.Empty(t, dst.Fiefs)
}

func TestProcessDeathEscheatSkipsDeadKing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")

	duke := testutils.CreateTestPC("chr_duke", "Baldric", "p2")
	duke.Location = "fief_2"
	dst, _ := duke.Player()
	require.NoError(t, h.world.AddCharacter(duke))
	h.world.Fief("fief_2").AddCharacter(duke.ID)

	f2 := h.world.Fief("fief_2")
	kst, _ := king.Player()
	kst.RemoveFief("fief_2")
	king.RemoveTitle("fief_2")
	f2.TransferOwnership(duke.ID)
	f2.SetTitleHolder(duke.ID)
	dst.AddFief("fief_2")
	duke.AddTitle("fief_2")

	// The crown sits on a corpse; escheated property must not be
	// handed to it.
	king.Alive = false

	out, err := h.svc.ProcessDeath(ctx, duke.ID, lifecycle.CauseNatural)
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, lifecycle.MsgEscheat, out.Fields["succession"])

	assert.True(t, f2.Owner().None())
	assert.True(t, f2.TitleHolder().None())
	assert.False(t, kst.OwnsFief("fief_2"))
}

func TestProcessDeathUnwindsRelations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")

	wife := testutils.CreateTestNPC("chr_wife", "Gisela", shared.SexFemale)
	wife.Location = "fief_1"
	wife.Spouse = king.ID
	king.Spouse = wife.ID
	require.NoError(t, h.world.AddCharacter(wife))

	wife.Pregnant = true
	h.sched.Add(journal.EventBirth, testutils.StartDate.Next(), map[string]shared.CharacterID{
		"mother": wife.ID,
		"father": king.ID,
	})

	army := testutils.CreateTestArmy("army_1", king.ID)
	army.SetLeader(king.ID)
	king.Army = army.ArmyID
	kst, _ := king.Player()
	kst.Armies = append(kst.Armies, army.ArmyID)
	require.NoError(t, h.world.AddArmy(army))

	h.world.Fief("fief_3").BailiffID = king.ID

	out, err := h.svc.ProcessDeath(ctx, king.ID, lifecycle.CauseNatural)
	require.NoError(t, err)
	require.True(t, out.Success)
	// No sons, no brothers: the realm escheats, and with no other
	// king resolvable the holdings end up crownless.
	assert.Equal(t, lifecycle.MsgEscheat, out.Fields["succession"])

	assert.True(t, wife.Spouse.None())
	assert.False(t, wife.Pregnant)
	assert.Zero(t, h.sched.Len())
	assert.True(t, h.world.Fief("fief_3").BailiffID.None())
	assert.True(t, king.Army.None())
	assert.Empty(t, king.Titles)
}

func TestProcessDeathFreesCaptives(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	king := h.world.Character("chr_king")
	npc := h.world.Character("chr_npc")

	// The king holds the NPC in the fief_1 gaol.
	npc.Captor = king.ID
	kst, _ := king.Player()
	kst.AddCaptive(npc.ID)
	h.world.Fief("fief_1").Imprison(npc.ID)

	_, err := h.svc.ProcessDeath(ctx, king.ID, lifecycle.CauseNatural)
	require.NoError(t, err)

	assert.False(t, npc.Captive())
	assert.False(t, h.world.Fief("fief_1").InGaol(npc.ID))
}
