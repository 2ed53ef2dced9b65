package journal

import (
	"sort"
	"sync"

	"github.com/talgard/crownlands/internal/domain/shared"
)

// ScheduledEvent is a future-dated event awaiting its season.
// Participants are keyed by role ("mother", "father", "bride",
// "groom") and resolved through the world when the event fires.
type ScheduledEvent struct {
	ID           int64                         `json:"id"`
	Type         EventType                     `json:"type"`
	Due          shared.Date                   `json:"due"`
	Participants map[string]shared.CharacterID `json:"participants,omitempty"`
}

// Participant returns the id bound to a role, empty when absent.
func (e *ScheduledEvent) Participant(role string) shared.CharacterID {
	return e.Participants[role]
}

// Involves reports whether the character appears in any role.
func (e *ScheduledEvent) Involves(id shared.CharacterID) bool {
	for _, p := range e.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Scheduler is the scheduled journal: future-dated events keyed by an
// auto-incrementing id. The season tick asks for due events and
// removes or postpones them after processing; the scheduler itself
// never dispatches.
type Scheduler struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*ScheduledEvent
}

// NewScheduler creates an empty scheduled journal.
func NewScheduler() *Scheduler {
	return &Scheduler{events: make(map[int64]*ScheduledEvent)}
}

// Add schedules an event and returns its id.
func (s *Scheduler) Add(t EventType, due shared.Date, participants map[string]shared.CharacterID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	ev := &ScheduledEvent{
		ID:           s.nextID,
		Type:         t,
		Due:          due,
		Participants: participants,
	}
	s.events[ev.ID] = ev
	return ev.ID
}

// Remove drops a scheduled event.
func (s *Scheduler) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
}

// Get returns the event with the given id, nil when absent.
func (s *Scheduler) Get(id int64) *ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id]
}

// DueAt lists events whose due date equals the tick date, in id order.
func (s *Scheduler) DueAt(date shared.Date) []*ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*ScheduledEvent
	for _, ev := range s.events {
		if ev.Due.Equal(date) {
			due = append(due, ev)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due
}

// Postpone pushes an event back exactly one season. Used for marriage
// deferral while a party sits in a besieged keep; the outer season
// loop is the only bound on how often this repeats.
func (s *Scheduler) Postpone(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev, ok := s.events[id]; ok {
		ev.Due = ev.Due.Next()
	}
}

// FindFor returns the first scheduled event of the given type
// involving the character, nil when none exists.
func (s *Scheduler) FindFor(t EventType, id shared.CharacterID) *ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *ScheduledEvent
	for _, ev := range s.events {
		if ev.Type != t || !ev.Involves(id) {
			continue
		}
		if found == nil || ev.ID < found.ID {
			found = ev
		}
	}
	return found
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
