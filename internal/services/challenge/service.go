// Package challenge resolves ownership disputes over provinces and
// kingdoms: a claimant who controls a majority of the constituent
// places for four seasons running takes the title.
package challenge

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/uuid"
	"github.com/talgard/crownlands/internal/world"
)

// SeasonsToWin is how many consecutive majority seasons a challenge
// must hold before the place changes hands.
const SeasonsToWin = 4

// StatureSwing is the stature-modifier change a concluded challenge
// applies to the challenger: up on success, down on failure.
const StatureSwing = 1.0

// Message codes produced by the challenge resolver.
const (
	MsgChallengeOpened    = "challenge.opened"
	MsgChallengeExists    = "challenge.exists"
	MsgChallengeOwnPlace  = "challenge.ownPlace"
	MsgChallengeBadPlace  = "challenge.badPlace"
	MsgChallengeSucceeded = "challenge.succeeded"
	MsgChallengeFailed    = "challenge.failed"
)

// Service opens challenges and tallies them each season.
//
// Like the lifecycle service, methods assume the caller serializes
// against the season tick via World.Exclusive.
type Service interface {
	// Open raises a challenge against a province or kingdom.
	Open(ctx context.Context, challengerID shared.CharacterID, placeID shared.PlaceID) (*lifecycle.Outcome, error)

	// Tick tallies every open challenge for the current season,
	// transferring ownership of the ones that have held a majority
	// long enough and dropping the ones that lost it.
	Tick(ctx context.Context) error
}

// ServiceConfig holds the collaborators of the challenge service.
type ServiceConfig struct {
	World     *world.World
	Journal   *journal.Journal
	Lifecycle lifecycle.Service
	IDs       uuid.Generator
}

type service struct {
	world     *world.World
	journal   *journal.Journal
	lifecycle lifecycle.Service
	ids       uuid.Generator
}

// NewService creates the challenge service.
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.World == nil {
		panic("world is required")
	}
	if cfg.Journal == nil {
		panic("journal is required")
	}
	if cfg.Lifecycle == nil {
		panic("lifecycle service is required")
	}

	svc := &service{
		world:     cfg.World,
		journal:   cfg.Journal,
		lifecycle: cfg.Lifecycle,
		ids:       cfg.IDs,
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}

func (s *service) Open(ctx context.Context, challengerID shared.CharacterID, placeID shared.PlaceID) (*lifecycle.Outcome, error) {
	if out := s.lifecycle.ChecksBeforeAction(challengerID, 1); out != nil {
		return out, nil
	}
	challenger := s.world.Character(challengerID)

	var kind world.ChallengeKind
	switch {
	case s.world.Province(placeID) != nil:
		kind = world.ChallengeProvince
	case s.world.Kingdom(placeID) != nil:
		kind = world.ChallengeKingdom
	default:
		return &lifecycle.Outcome{Code: MsgChallengeBadPlace, Fields: map[string]any{
			"place": string(placeID),
		}}, nil
	}

	place := s.world.Place(placeID)
	if place.Owner() == challengerID {
		return &lifecycle.Outcome{Code: MsgChallengeOwnPlace, Fields: map[string]any{
			"place": place.Name(),
		}}, nil
	}

	ch := &world.Challenge{
		ID:         s.ids.New(),
		Challenger: challengerID,
		Place:      placeID,
		Kind:       kind,
	}
	if err := s.world.AddChallenge(ch); err != nil {
		return &lifecycle.Outcome{Code: MsgChallengeExists, Fields: map[string]any{
			"place": place.Name(),
		}}, nil
	}

	s.world.AdjustDays(challenger, -1)

	return &lifecycle.Outcome{Success: true, Code: MsgChallengeOpened, Fields: map[string]any{
		"challenger": challenger.Name(),
		"place":      place.Name(),
	}}, nil
}

func (s *service) Tick(ctx context.Context) error {
	for _, ch := range s.world.OpenChallenges() {
		s.tally(ch)
	}
	return nil
}

// tally advances or drops a single challenge for the season.
func (s *service) tally(ch *world.Challenge) {
	challenger := s.world.Character(ch.Challenger)
	if challenger == nil || !challenger.Alive {
		log.Printf("challenge: dropping %s, challenger %s gone", ch.ID, ch.Challenger)
		s.world.CloseChallenge(ch.ID)
		return
	}

	owned, total := s.holdings(ch)
	if total == 0 || owned*2 <= total {
		s.conclude(ch, challenger, false)
		return
	}

	ch.Seasons++
	if ch.Seasons >= SeasonsToWin {
		s.transfer(ch, challenger)
		s.conclude(ch, challenger, true)
	}
}

// holdings counts how much of the contested place the challenger
// controls.
func (s *service) holdings(ch *world.Challenge) (owned, total int) {
	player, ok := s.world.Character(ch.Challenger).Player()

	switch ch.Kind {
	case world.ChallengeProvince:
		p := s.world.Province(ch.Place)
		if p == nil {
			return 0, 0
		}
		total = len(p.FiefIDs)
		if !ok {
			return 0, total
		}
		for _, fid := range p.FiefIDs {
			if player.OwnsFief(fid) {
				owned++
			}
		}
	case world.ChallengeKingdom:
		k := s.world.Kingdom(ch.Place)
		if k == nil {
			return 0, 0
		}
		total = len(k.ProvinceIDs)
		if !ok {
			return 0, total
		}
		for _, pid := range k.ProvinceIDs {
			if player.OwnsProvince(pid) {
				owned++
			}
		}
	}
	return owned, total
}

// transfer hands the contested place to the challenger.
func (s *service) transfer(ch *world.Challenge, challenger *character.Character) {
	place := s.world.Place(ch.Place)
	if place == nil {
		return
	}

	if prev := s.world.Character(place.Owner()); prev != nil {
		if st, ok := prev.Player(); ok && ch.Kind == world.ChallengeProvince {
			st.RemoveProvince(ch.Place)
		}
		if place.TitleHolder() == prev.ID {
			prev.RemoveTitle(ch.Place)
		}
	}
	if prev := s.world.Character(place.TitleHolder()); prev != nil {
		prev.RemoveTitle(ch.Place)
	}

	place.TransferOwnership(challenger.ID)
	place.SetTitleHolder(challenger.ID)
	challenger.AddTitle(ch.Place)
	if st, ok := challenger.Player(); ok && ch.Kind == world.ChallengeProvince {
		st.AddProvince(ch.Place)
	}
}

// conclude closes the challenge and journals the verdict.
func (s *service) conclude(ch *world.Challenge, challenger *character.Character, won bool) {
	s.world.CloseChallenge(ch.ID)

	place := s.world.Place(ch.Place)
	placeName := string(ch.Place)
	if place != nil {
		placeName = place.Name()
	}

	evType := journal.EventChallengeFailed
	code := MsgChallengeFailed
	swing := -StatureSwing
	if won {
		evType = journal.EventChallengeSucceeded
		code = MsgChallengeSucceeded
		swing = StatureSwing
	}
	s.world.AdjustStature(challenger, swing)
	s.journal.AddPastEvent(evType, s.world.Now, code, map[string]any{
		"challenger": challenger.Name(),
		"place":      placeName,
		"seasons":    ch.Seasons,
	}, []journal.Persona{
		{CharacterID: challenger.ID, Role: "challenger"},
		journal.ParsePersona(journal.BroadcastPersona),
	})
}
