package journal

import (
	"sync"

	"github.com/talgard/crownlands/internal/domain/shared"
)

// Journal is the append-only past record. Each appended entry is
// delivered to the inbox of every interested connected player exactly
// once, and forwarded to the notifier best-effort.
type Journal struct {
	mu      sync.Mutex
	nextID  int64
	entries []*Entry
	inboxes map[shared.PlayerID][]*Entry

	roster   Roster
	notifier Notifier
}

// Config holds the journal's collaborators.
type Config struct {
	Roster   Roster
	Notifier Notifier // optional
}

// NewJournal creates an empty past journal.
func NewJournal(cfg *Config) *Journal {
	j := &Journal{inboxes: make(map[shared.PlayerID][]*Entry)}
	if cfg != nil {
		j.roster = cfg.Roster
		j.notifier = cfg.Notifier
	}
	return j
}

// AddPastEvent appends an entry and fans it out to interested players.
// Interest comes from the persona list: each persona names a character
// whose owning player is interested; the broadcast sentinel reaches
// every connected player. A player holding multiple roles in one entry
// still receives it once.
func (j *Journal) AddPastEvent(t EventType, date shared.Date, message string, fields map[string]any, personas []Persona) *Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.nextID++
	entry := &Entry{
		ID:       j.nextID,
		Type:     t,
		Date:     date,
		Message:  message,
		Fields:   fields,
		Personas: personas,
	}
	j.entries = append(j.entries, entry)

	for playerID := range j.interested(personas) {
		j.inboxes[playerID] = append(j.inboxes[playerID], entry)
		if j.notifier != nil {
			j.notifier.UpdatePlayer(playerID, message, fields)
		}
	}

	return entry
}

// interested resolves the persona list to the set of connected players
// the entry should reach. The map keying makes delivery idempotent per
// player.
func (j *Journal) interested(personas []Persona) map[shared.PlayerID]struct{} {
	out := make(map[shared.PlayerID]struct{})
	if j.roster == nil {
		return out
	}

	for _, p := range personas {
		if p.Broadcast() {
			for _, playerID := range j.roster.ConnectedPlayers() {
				out[playerID] = struct{}{}
			}
			continue
		}
		playerID, ok := j.roster.PlayerFor(p.CharacterID)
		if !ok || !j.roster.IsConnected(playerID) {
			continue
		}
		out[playerID] = struct{}{}
	}
	return out
}

// Inbox returns the delivered entries for a player, oldest first.
func (j *Journal) Inbox(playerID shared.PlayerID) []*Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	inbox := j.inboxes[playerID]
	out := make([]*Entry, len(inbox))
	copy(out, inbox)
	return out
}

// Entries returns the full past record, oldest first.
func (j *Journal) Entries() []*Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Entry returns the record with the given id, nil when absent.
func (j *Journal) Entry(id int64) *Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
