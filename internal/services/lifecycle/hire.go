package lifecycle

import (
	"context"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/stats"
)

// HireNPC makes a salary offer to an NPC. Offers must improve on the
// hirer's previous rejected offer; an accepted offer becomes the NPC's
// salary, with the first season paid up front from the hirer's purse.
// Hiring away another player's employee is allowed.
func (s *service) HireNPC(ctx context.Context, hirerID, npcID shared.CharacterID, offer int64) (*Outcome, error) {
	hirer := s.world.Character(hirerID)
	if hirer == nil {
		return deny(MsgUnknownCharacter, fields("character", string(hirerID))), nil
	}
	npc := s.world.Character(npcID)
	if npc == nil {
		return deny(MsgUnknownCharacter, fields("character", string(npcID))), nil
	}

	if out := s.checksBeforeAction(hirer, 1); out != nil {
		return out, nil
	}
	if out := s.ChecksBeforeSpending(hirerID, offer); out != nil {
		return out, nil
	}

	st, ok := npc.NonPlayer()
	if !ok || !npc.Alive || npc.Captive() {
		return deny(MsgNotHireable, fields("character", npc.Name())), nil
	}
	if npc.Employer == hirer.ID {
		return deny(MsgNotHireable, fields("character", npc.Name())), nil
	}

	s.world.AdjustDays(hirer, -1)

	f := fields(
		"hirer", hirer.Name(),
		"npc", npc.Name(),
		"offer", offer,
	)

	if last, ok := st.LastOffers[hirer.ID]; ok && offer <= last {
		return deny(MsgOfferTooLow, f), nil
	}
	st.LastOffers[hirer.ID] = offer

	demand := stats.SalaryDemand(npc, s.world.Now,
		s.world.RankStature(npc),
		s.statureOf(hirer),
		s.employerStature(npc))
	if float64(offer) < demand {
		return deny(MsgOfferRejected, f), nil
	}

	s.releaseFromEmployer(npc)

	hirerState, _ := hirer.Player()
	hirerState.Purse -= offer
	hirerState.AddToEntourage(npc.ID)

	npc.Employer = hirer.ID
	npc.FamilyHead = ""
	st.Salary = offer
	st.InEntourage = true
	st.LastOffers = make(map[shared.CharacterID]int64)

	s.relocate(npc, hirer.Location)

	return succeed(MsgHired, f), nil
}

// FireNPC releases an employee from service.
func (s *service) FireNPC(ctx context.Context, employerID, npcID shared.CharacterID) (*Outcome, error) {
	employer := s.world.Character(employerID)
	if employer == nil {
		return deny(MsgUnknownCharacter, fields("character", string(employerID))), nil
	}
	npc := s.world.Character(npcID)
	if npc == nil {
		return deny(MsgUnknownCharacter, fields("character", string(npcID))), nil
	}
	if npc.Employer != employer.ID {
		return deny(MsgNotYourEmployee, fields(
			"employer", employer.Name(),
			"npc", npc.Name(),
		)), nil
	}

	s.releaseFromEmployer(npc)

	return succeed(MsgFired, fields(
		"employer", employer.Name(),
		"npc", npc.Name(),
	)), nil
}

// releaseFromEmployer detaches an NPC from its current employer's
// roster, leaving it unattached.
func (s *service) releaseFromEmployer(npc *character.Character) {
	if npc.Employer.None() {
		return
	}
	if old := s.world.Character(npc.Employer); old != nil {
		if st, ok := old.Player(); ok {
			st.RemoveFromEntourage(npc.ID)
		}
	}
	npc.Employer = ""
	if st, ok := npc.NonPlayer(); ok {
		st.InEntourage = false
	}
}

// employerStature is the stature of an NPC's current employer, zero
// when unemployed.
func (s *service) employerStature(npc *character.Character) float64 {
	employer := s.world.EmployerOf(npc)
	if employer == nil {
		return 0
	}
	return s.statureOf(employer)
}

// relocate moves a character between fiefs, updating presence lists.
func (s *service) relocate(c *character.Character, dest shared.PlaceID) {
	if c.Location == dest {
		return
	}
	if from := s.world.Fief(c.Location); from != nil {
		from.RemoveCharacter(c.ID)
	}
	c.Location = dest
	if to := s.world.Fief(dest); to != nil {
		to.AddCharacter(c.ID)
	}
}
