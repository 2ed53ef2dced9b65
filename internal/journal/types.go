// Package journal keeps the two event records of the world: the
// immutable past journal with interest-based delivery, and the
// scheduled journal of future-dated events processed once per season
// tick.
package journal

import (
	"strings"

	"github.com/talgard/crownlands/internal/domain/shared"
)

// EventType names a journal event.
type EventType string

// Scheduled event types.
const (
	EventBirth    EventType = "birth"
	EventMarriage EventType = "marriage"
)

// Past event types.
const (
	EventDeath              EventType = "death"
	EventBirthAnnounced     EventType = "birthAnnounced"
	EventMarriageCompleted  EventType = "marriageCompleted"
	EventMarriageCancelled  EventType = "marriageCancelled"
	EventRansomDemand       EventType = "ransomDemand"
	EventCaptiveTaken       EventType = "captiveTaken"
	EventCaptiveReleased    EventType = "captiveReleased"
	EventSpyReport          EventType = "spyReport"
	EventChallengeSucceeded EventType = "challengeSucceeded"
	EventChallengeFailed    EventType = "challengeFailed"
	EventTitleGranted       EventType = "titleGranted"
)

// BroadcastPersona is the sentinel marking an entry as visible to all
// connected players.
const BroadcastPersona = "all|all"

// Persona ties a character id to the role it plays in an event.
type Persona struct {
	CharacterID shared.CharacterID `json:"character_id"`
	Role        string             `json:"role"`
}

// String renders the wire form "characterID|role".
func (p Persona) String() string {
	return string(p.CharacterID) + "|" + p.Role
}

// ParsePersona splits a "characterID|role" string. The broadcast
// sentinel parses to an empty character id with role "all".
func ParsePersona(s string) Persona {
	if s == BroadcastPersona {
		return Persona{Role: "all"}
	}
	id, role, found := strings.Cut(s, "|")
	if !found {
		return Persona{CharacterID: shared.CharacterID(s)}
	}
	return Persona{CharacterID: shared.CharacterID(id), Role: role}
}

// Broadcast reports whether the persona is the all-players sentinel.
func (p Persona) Broadcast() bool {
	return p.CharacterID == "" && p.Role == "all"
}

// Entry is one immutable past-journal record.
type Entry struct {
	ID       int64          `json:"id"`
	Type     EventType      `json:"type"`
	Date     shared.Date    `json:"date"`
	Message  string         `json:"message"`
	Fields   map[string]any `json:"fields,omitempty"`
	Personas []Persona      `json:"personas,omitempty"`
}
