package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	mockjournal "github.com/talgard/crownlands/internal/journal/mock"
)

func TestPersona(t *testing.T) {
	p := journal.Persona{CharacterID: "chr_1", Role: "mother"}
	assert.Equal(t, "chr_1|mother", p.String())
	assert.Equal(t, p, journal.ParsePersona("chr_1|mother"))
	assert.False(t, p.Broadcast())

	all := journal.ParsePersona(journal.BroadcastPersona)
	assert.True(t, all.Broadcast())

	bare := journal.ParsePersona("chr_2")
	assert.Equal(t, shared.CharacterID("chr_2"), bare.CharacterID)
	assert.Empty(t, bare.Role)
}

func TestAddPastEvent(t *testing.T) {
	persona := func(id shared.CharacterID, role string) journal.Persona {
		return journal.Persona{CharacterID: id, Role: role}
	}

	t.Run("delivers to the interested player once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roster := mockjournal.NewMockRoster(ctrl)
		notifier := mockjournal.NewMockNotifier(ctrl)

		// chr_1 and chr_2 both belong to p1: one delivery.
		roster.EXPECT().PlayerFor(shared.CharacterID("chr_1")).Return(shared.PlayerID("p1"), true)
		roster.EXPECT().PlayerFor(shared.CharacterID("chr_2")).Return(shared.PlayerID("p1"), true)
		roster.EXPECT().IsConnected(shared.PlayerID("p1")).Return(true).Times(2)
		notifier.EXPECT().UpdatePlayer(shared.PlayerID("p1"), "death.character", gomock.Any())

		j := journal.NewJournal(&journal.Config{Roster: roster, Notifier: notifier})
		entry := j.AddPastEvent(journal.EventDeath, spring, "death.character",
			map[string]any{"name": "Osric"},
			[]journal.Persona{persona("chr_1", "deceased"), persona("chr_2", "heir")})

		require.NotNil(t, entry)
		assert.Equal(t, int64(1), entry.ID)

		inbox := j.Inbox("p1")
		require.Len(t, inbox, 1)
		assert.Same(t, entry, inbox[0])
	})

	t.Run("skips disconnected and unplayed personas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roster := mockjournal.NewMockRoster(ctrl)
		notifier := mockjournal.NewMockNotifier(ctrl)

		roster.EXPECT().PlayerFor(shared.CharacterID("chr_1")).Return(shared.PlayerID("p1"), true)
		roster.EXPECT().IsConnected(shared.PlayerID("p1")).Return(false)
		roster.EXPECT().PlayerFor(shared.CharacterID("chr_npc")).Return(shared.PlayerID(""), false)

		j := journal.NewJournal(&journal.Config{Roster: roster, Notifier: notifier})
		j.AddPastEvent(journal.EventDeath, spring, "death.character", nil,
			[]journal.Persona{persona("chr_1", "deceased"), persona("chr_npc", "witness")})

		assert.Empty(t, j.Inbox("p1"))
		assert.Len(t, j.Entries(), 1) // the record itself is kept
	})

	t.Run("broadcast reaches every connected player", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roster := mockjournal.NewMockRoster(ctrl)
		notifier := mockjournal.NewMockNotifier(ctrl)

		roster.EXPECT().ConnectedPlayers().Return([]shared.PlayerID{"p1", "p2"})
		notifier.EXPECT().UpdatePlayer(shared.PlayerID("p1"), "challenge.succeeded", gomock.Any())
		notifier.EXPECT().UpdatePlayer(shared.PlayerID("p2"), "challenge.succeeded", gomock.Any())

		j := journal.NewJournal(&journal.Config{Roster: roster, Notifier: notifier})
		j.AddPastEvent(journal.EventChallengeSucceeded, spring, "challenge.succeeded", nil,
			[]journal.Persona{journal.ParsePersona(journal.BroadcastPersona)})

		assert.Len(t, j.Inbox("p1"), 1)
		assert.Len(t, j.Inbox("p2"), 1)
	})

	t.Run("works without a notifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roster := mockjournal.NewMockRoster(ctrl)
		roster.EXPECT().PlayerFor(shared.CharacterID("chr_1")).Return(shared.PlayerID("p1"), true)
		roster.EXPECT().IsConnected(shared.PlayerID("p1")).Return(true)

		j := journal.NewJournal(&journal.Config{Roster: roster})
		j.AddPastEvent(journal.EventDeath, spring, "death.character", nil,
			[]journal.Persona{persona("chr_1", "deceased")})
		assert.Len(t, j.Inbox("p1"), 1)
	})
}

func TestEntryLookup(t *testing.T) {
	j := journal.NewJournal(&journal.Config{})

	first := j.AddPastEvent(journal.EventDeath, spring, "death.character", nil, nil)
	second := j.AddPastEvent(journal.EventRansomDemand, summer, "ransom.demanded", nil, nil)

	assert.Same(t, first, j.Entry(first.ID))
	assert.Same(t, second, j.Entry(second.ID))
	assert.Nil(t, j.Entry(99))

	entries := j.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, first, entries[0])
}
