package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
)

// MarriageAge is the minimum age for either party.
const MarriageAge = 16

// ProposeMarriage validates both parties and, on success, schedules
// the wedding for the following season and records the active proposal
// under the groom's family head.
func (s *service) ProposeMarriage(ctx context.Context, groomID, brideID shared.CharacterID) (*Outcome, error) {
	groom := s.world.Character(groomID)
	if groom == nil {
		return deny(MsgUnknownCharacter, fields("character", string(groomID))), nil
	}
	bride := s.world.Character(brideID)
	if bride == nil {
		return deny(MsgUnknownCharacter, fields("character", string(brideID))), nil
	}

	if out := s.checksBeforeAction(groom, 1); out != nil {
		return out, nil
	}

	// Bride eligibility.
	if bride.Sex != shared.SexFemale || !bride.Alive ||
		!bride.Spouse.None() || !bride.Fiancee.None() {
		return deny(MsgMarriageBrideIneligible, fields("bride", bride.Name())), nil
	}
	if s.age(bride) < MarriageAge {
		return deny(MsgMarriageUnderage, fields("bride", bride.Name())), nil
	}
	if s.world.FamilyHeadOf(bride) == nil {
		return deny(MsgMarriageNoFamily, fields("bride", bride.Name())), nil
	}

	// Groom eligibility.
	if groom.Sex != shared.SexMale || !groom.Spouse.None() || !groom.Fiancee.None() {
		return deny(MsgMarriageGroomIneligible, fields("groom", groom.Name())), nil
	}
	if s.age(groom) < MarriageAge {
		return deny(MsgMarriageUnderage, fields("groom", groom.Name())), nil
	}
	head := s.world.FamilyHeadOf(groom)
	if head == nil {
		return deny(MsgMarriageNoFamily, fields("groom", groom.Name())), nil
	}
	if s.world.SameFamily(groom, bride) {
		return deny(MsgMarriageIncest, fields(
			"groom", groom.Name(),
			"bride", bride.Name(),
		)), nil
	}
	if st, ok := head.Player(); ok {
		if _, open := st.Proposals[groom.ID]; open {
			return deny(MsgMarriageDoubleProposal, fields("groom", groom.Name())), nil
		}
	}

	due := s.world.Now.Next()
	evID := s.scheduler.Add(journal.EventMarriage, due, map[string]shared.CharacterID{
		"groom": groom.ID,
		"bride": bride.ID,
	})

	groom.Fiancee = bride.ID
	bride.Fiancee = groom.ID
	if st, ok := head.Player(); ok {
		st.Proposals[groom.ID] = character.Proposal{
			Groom:   groom.ID,
			Bride:   bride.ID,
			EventID: evID,
		}
	} else {
		log.Printf("lifecycle: family head %s of groom %s holds no proposal book", head.ID, groom.ID)
	}

	s.world.AdjustDays(groom, -1)

	return succeed(MsgMarriageProposed, fields(
		"groom", groom.Name(),
		"bride", bride.Name(),
		"due", due.String(),
	)), nil
}

// CompleteMarriage finalizes a scheduled wedding. It is cancelled
// outright when a party has died, and postponed exactly one season
// when either party sits in a besieged keep; the caller removes or
// postpones the scheduled entry according to the outcome code.
func (s *service) CompleteMarriage(ctx context.Context, ev *journal.ScheduledEvent) (*Outcome, error) {
	groom := s.world.Character(ev.Participant("groom"))
	bride := s.world.Character(ev.Participant("bride"))

	if groom == nil || bride == nil || !groom.Alive || !bride.Alive {
		s.dissolveEngagement(groom, bride, ev.ID)
		return deny(MsgMarriageCancelled, fields(
			"groom", nameOf(groom),
			"bride", nameOf(bride),
		)), nil
	}

	if s.world.InBesiegedKeep(groom) || s.world.InBesiegedKeep(bride) {
		log.Printf("lifecycle: marriage %d postponed one season, party under siege", ev.ID)
		return deny(MsgMarriagePostponed, fields(
			"groom", groom.Name(),
			"bride", bride.Name(),
		)), nil
	}

	groom.Spouse = bride.ID
	bride.Spouse = groom.ID
	groom.Fiancee = ""
	bride.Fiancee = ""
	s.removeProposal(groom)

	// The bride joins the groom's household and location.
	if head := s.world.FamilyHeadOf(groom); head != nil && !bride.IsPlayer() {
		bride.FamilyHead = head.ID
		bride.Employer = ""
	}
	if bride.Location != groom.Location {
		if from := s.world.Fief(bride.Location); from != nil {
			from.RemoveCharacter(bride.ID)
		}
		bride.Location = groom.Location
		if to := s.world.Fief(groom.Location); to != nil {
			to.AddCharacter(bride.ID)
		}
	}

	s.journal.AddPastEvent(journal.EventMarriageCompleted, s.world.Now, MsgMarriageCompleted,
		fields("groom", groom.Name(), "bride", bride.Name()),
		[]journal.Persona{
			{CharacterID: groom.ID, Role: "groom"},
			{CharacterID: bride.ID, Role: "bride"},
		})

	return succeed(MsgMarriageCompleted, fields(
		"groom", groom.Name(),
		"bride", bride.Name(),
	)), nil
}

// CancelMarriage breaks off the engagement the character is part of.
func (s *service) CancelMarriage(ctx context.Context, id shared.CharacterID) (*Outcome, error) {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id))), nil
	}
	if c.Fiancee.None() {
		return deny(MsgMarriageGroomIneligible, fields("character", c.Name())), nil
	}
	s.cancelEngagementOf(ctx, c)
	return succeed(MsgMarriageCancelled, fields("character", c.Name())), nil
}

// cancelEngagementOf removes the scheduled wedding and proposal for
// the character's engagement, clears both fiancée links, and emits the
// cancellation event. No-op when unengaged.
func (s *service) cancelEngagementOf(ctx context.Context, c *character.Character) {
	if c.Fiancee.None() {
		return
	}
	other := s.world.Fiancee(c)
	if ev := s.scheduler.FindFor(journal.EventMarriage, c.ID); ev != nil {
		s.scheduler.Remove(ev.ID)
	}
	s.dissolveEngagement(c, other, 0)
}

// dissolveEngagement is the shared teardown: proposal book, fiancée
// links, cancellation entry.
func (s *service) dissolveEngagement(a, b *character.Character, evID int64) {
	if evID != 0 {
		s.scheduler.Remove(evID)
	}

	groom := a
	if groom == nil || groom.Sex != shared.SexMale {
		groom = b
	}
	if groom != nil {
		s.removeProposal(groom)
	}

	var personas []journal.Persona
	for _, c := range []*character.Character{a, b} {
		if c != nil {
			c.Fiancee = ""
			personas = append(personas, journal.Persona{CharacterID: c.ID, Role: "betrothed"})
		}
	}

	s.journal.AddPastEvent(journal.EventMarriageCancelled, s.world.Now, MsgMarriageCancelled,
		fields("groom", nameOf(a), "bride", nameOf(b)), personas)
}

func (s *service) removeProposal(groom *character.Character) {
	if groom == nil {
		return
	}
	head := s.world.FamilyHeadOf(groom)
	if head == nil {
		return
	}
	if st, ok := head.Player(); ok {
		delete(st.Proposals, groom.ID)
	}
}

func (s *service) age(c *character.Character) int {
	return ageAt(c, s.world.Now)
}

func nameOf(c *character.Character) string {
	if c == nil {
		return ""
	}
	return c.Name()
}
