// Package lifecycle implements the character lifecycle state machine:
// death and succession, marriage, pregnancy and birth, captivity, and
// the roster/title/movement mutators around them.
package lifecycle

import (
	"context"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/random"
	"github.com/talgard/crownlands/internal/uuid"
	"github.com/talgard/crownlands/internal/world"
)

// Service is the lifecycle state machine. Every operation returns an
// Outcome (success flag, message code, interpolation fields) for the
// player, plus an error reserved for internal faults; business-rule
// refusals are outcomes, never errors.
//
// Methods assume the caller serializes against the season tick via
// World.Exclusive; the engine holds that section for the whole sweep.
type Service interface {
	// ProcessDeath runs the death pipeline for a character. Idempotent
	// on the alive flag.
	ProcessDeath(ctx context.Context, id shared.CharacterID, cause DeathCause) (*Outcome, error)

	// ProposeMarriage validates eligibility and schedules the wedding.
	ProposeMarriage(ctx context.Context, groomID, brideID shared.CharacterID) (*Outcome, error)

	// CompleteMarriage finalizes a scheduled wedding event.
	CompleteMarriage(ctx context.Context, ev *journal.ScheduledEvent) (*Outcome, error)

	// CancelMarriage cancels the engagement a character is part of.
	CancelMarriage(ctx context.Context, id shared.CharacterID) (*Outcome, error)

	// GetSpousePregnant attempts conception for a married couple.
	GetSpousePregnant(ctx context.Context, husbandID shared.CharacterID) (*Outcome, error)

	// GiveBirth resolves a scheduled birth event.
	GiveBirth(ctx context.Context, ev *journal.ScheduledEvent) (*Outcome, error)

	// SpyOnCharacter, SpyOnFief and SpyOnArmy run a spying attempt
	// against the three target kinds.
	SpyOnCharacter(ctx context.Context, actorID, targetID shared.CharacterID) (*Outcome, error)
	SpyOnFief(ctx context.Context, actorID shared.CharacterID, fiefID shared.PlaceID) (*Outcome, error)
	SpyOnArmy(ctx context.Context, actorID shared.CharacterID, armyID shared.ArmyID) (*Outcome, error)

	// Kidnap attempts to take a character captive.
	Kidnap(ctx context.Context, actorID, targetID shared.CharacterID) (*Outcome, error)

	// RansomCaptive demands a ransom; ReleaseCaptive frees a captive;
	// ExecuteCaptive kills one.
	RansomCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error)
	ReleaseCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error)
	ExecuteCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error)

	// GrantTitle transfers a held title to another character.
	GrantTitle(ctx context.Context, granterID, granteeID shared.CharacterID, placeID shared.PlaceID) (*Outcome, error)

	// HireNPC and FireNPC manage employment rosters.
	HireNPC(ctx context.Context, hirerID, npcID shared.CharacterID, offer int64) (*Outcome, error)
	FireNPC(ctx context.Context, employerID, npcID shared.CharacterID) (*Outcome, error)

	// MoveCharacter relocates a character one fief at a time;
	// SetRoute queues further destinations.
	MoveCharacter(ctx context.Context, id shared.CharacterID, dest shared.PlaceID) (*Outcome, error)
	SetRoute(ctx context.Context, id shared.CharacterID, route []shared.PlaceID) (*Outcome, error)

	// ChecksBeforeAction and ChecksBeforeSpending are the guard
	// predicates shared by client-facing operations.
	ChecksBeforeAction(id shared.CharacterID, days float64) *Outcome
	ChecksBeforeSpending(id shared.CharacterID, amount int64) *Outcome
}

// ServiceConfig holds the collaborators of the lifecycle service.
type ServiceConfig struct {
	World     *world.World
	Journal   *journal.Journal
	Scheduler *journal.Scheduler
	Random    random.Source
	IDs       uuid.Generator
}

type service struct {
	world     *world.World
	journal   *journal.Journal
	scheduler *journal.Scheduler
	rand      random.Source
	ids       uuid.Generator
}

// NewService creates the lifecycle service.
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.World == nil {
		panic("world is required")
	}
	if cfg.Journal == nil || cfg.Scheduler == nil {
		panic("journal and scheduler are required")
	}

	svc := &service{
		world:     cfg.World,
		journal:   cfg.Journal,
		scheduler: cfg.Scheduler,
		rand:      cfg.Random,
		ids:       cfg.IDs,
	}
	if svc.rand == nil {
		svc.rand = random.New(0)
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}
