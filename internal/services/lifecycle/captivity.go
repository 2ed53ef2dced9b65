package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/stats"
)

// Kidnap attempts to take the target captive. Kidnap and spying share
// the two-stage covert resolution; on success the target is moved into
// the captor's home fief gaol with its posts severed, and on the
// fail-killed branch the kidnapper dies.
func (s *service) Kidnap(ctx context.Context, actorID, targetID shared.CharacterID) (*Outcome, error) {
	actor := s.world.Character(actorID)
	if actor == nil {
		return deny(MsgUnknownCharacter, fields("character", string(actorID))), nil
	}
	target := s.world.Character(targetID)
	if target == nil {
		return deny(MsgUnknownCharacter, fields("character", string(targetID))), nil
	}

	if out := s.checksBeforeAction(actor, 1); out != nil {
		return out, nil
	}
	if out := s.checksSameFief(actor, target); out != nil {
		return out, nil
	}
	if target.Captive() {
		return deny(MsgAlreadyCaptive, fields("target", target.Name())), nil
	}

	s.world.AdjustDays(actor, -1)

	odds := stats.CovertOdds(actor, target, s.covertTarget(target))
	res := stats.ResolveCovert(odds, stats.KidnapDetectThreshold, s.rand)

	f := fields("actor", actor.Name(), "target", target.Name())

	switch {
	case res.Success:
		s.takeCaptive(actor, target)
		code := MsgKidnapSuccess
		if res.Detected {
			code = MsgKidnapSuccessDetected
		}
		s.journal.AddPastEvent(journal.EventCaptiveTaken, s.world.Now, code, f, covertPersonas(actor, target, res.Detected))
		return succeed(code, f), nil

	case res.Killed:
		s.journal.AddPastEvent(journal.EventDeath, s.world.Now, MsgKidnapFailKilled, f, covertPersonas(actor, target, true))
		if _, err := s.ProcessDeath(ctx, actor.ID, CauseKidnap); err != nil {
			return nil, err
		}
		return deny(MsgKidnapFailKilled, f), nil

	case res.Detected:
		return deny(MsgKidnapFailDetected, f), nil

	default:
		return deny(MsgKidnapFail, f), nil
	}
}

// takeCaptive moves the target into the captor's home fief gaol and
// severs its bailiff post and army leadership.
func (s *service) takeCaptive(captor, target *character.Character) {
	s.vacateBailiffPosts(target)
	s.vacateArmyLeadership(target)

	target.Captor = captor.ID
	if st, ok := captor.Player(); ok {
		st.AddCaptive(target.ID)
	}

	if from := s.world.Fief(target.Location); from != nil {
		from.RemoveCharacter(target.ID)
	}
	gaolFief := s.world.HomeFief(captor)
	if gaolFief == nil {
		log.Printf("lifecycle: captor %s has no home fief for gaol", captor.ID)
		return
	}
	target.Location = gaolFief.ID()
	gaolFief.AddCharacter(target.ID)
	gaolFief.Imprison(target.ID)
}

// SpyOnCharacter scouts a character's ratings; the report's accuracy
// degrades with the spy's leadership.
func (s *service) SpyOnCharacter(ctx context.Context, actorID, targetID shared.CharacterID) (*Outcome, error) {
	target := s.world.Character(targetID)
	if target == nil {
		return deny(MsgUnknownCharacter, fields("character", string(targetID))), nil
	}
	return s.spyAgainst(ctx, actorID, target, func(actor *character.Character) map[string]any {
		v := stats.EstimateVariance(s.leadershipOf(actor, stats.FieldBattle))
		return fields(
			"target", target.Name(),
			"combat", s.estimate(stats.CombatValue(target, s.world.Now, stats.Current, 0), v),
			"management", s.estimate(target.BaseManagement, v),
			"stature", s.statureOf(target),
		)
	})
}

// SpyOnFief scouts a fief's treasury and loyalty.
func (s *service) SpyOnFief(ctx context.Context, actorID shared.CharacterID, fiefID shared.PlaceID) (*Outcome, error) {
	f := s.world.Fief(fiefID)
	if f == nil {
		return deny(MsgUnknownPlace, fields("place", string(fiefID))), nil
	}
	guard := s.world.Character(f.BailiffID)
	if guard == nil {
		guard = s.world.Character(f.Owner())
	}
	return s.spyAgainst(ctx, actorID, guard, func(actor *character.Character) map[string]any {
		v := stats.EstimateVariance(s.leadershipOf(actor, stats.SiegeWork))
		return fields(
			"fief", f.Name(),
			"treasury", s.estimate(float64(f.AvailableTreasury()), v),
			"loyalty", s.estimate(f.Loyalty, v),
		)
	})
}

// SpyOnArmy scouts an army's troop strength.
func (s *service) SpyOnArmy(ctx context.Context, actorID shared.CharacterID, armyID shared.ArmyID) (*Outcome, error) {
	a := s.world.Army(armyID)
	if a == nil {
		return deny(MsgUnknownPlace, fields("army", string(armyID))), nil
	}
	return s.spyAgainst(ctx, actorID, s.world.Character(a.LeaderID), func(actor *character.Character) map[string]any {
		v := stats.EstimateVariance(s.leadershipOf(actor, stats.FieldBattle))
		return fields(
			"army", string(a.ArmyID),
			"troops", s.estimate(float64(a.TotalTroops()), v),
		)
	})
}

// spyAgainst runs the shared spy resolution. The opposition may be nil
// (an unguarded fief or leaderless army), which leaves only the base
// odds in play.
func (s *service) spyAgainst(ctx context.Context, actorID shared.CharacterID, opposition *character.Character, report func(actor *character.Character) map[string]any) (*Outcome, error) {
	actor := s.world.Character(actorID)
	if actor == nil {
		return deny(MsgUnknownCharacter, fields("character", string(actorID))), nil
	}
	if out := s.checksBeforeAction(actor, 1); out != nil {
		return out, nil
	}

	s.world.AdjustDays(actor, -1)

	var odds float64
	if opposition != nil {
		odds = stats.CovertOdds(actor, opposition, s.covertTarget(opposition))
	} else {
		odds = stats.UnopposedCovertOdds(actor)
	}
	res := stats.ResolveCovert(odds, stats.SpyDetectThreshold, s.rand)

	f := fields("actor", actor.Name())

	switch {
	case res.Success:
		for k, v := range report(actor) {
			f[k] = v
		}
		code := MsgSpySuccess
		if res.Detected {
			code = MsgSpySuccessDetected
		}
		s.journal.AddPastEvent(journal.EventSpyReport, s.world.Now, code, f, spyPersonas(actor, opposition, res.Detected))
		return succeed(code, f), nil

	case res.Killed:
		s.journal.AddPastEvent(journal.EventDeath, s.world.Now, MsgSpyFailKilled, f, spyPersonas(actor, opposition, true))
		if _, err := s.ProcessDeath(ctx, actor.ID, CauseSpy); err != nil {
			return nil, err
		}
		return deny(MsgSpyFailKilled, f), nil

	case res.Detected:
		return deny(MsgSpyFailDetected, f), nil

	default:
		return deny(MsgSpyFail, f), nil
	}
}

// estimate perturbs a true value by the variance band.
func (s *service) estimate(value, variance float64) float64 {
	return value * s.rand.Between(1-variance, 1+variance)
}

// RansomCaptive computes and records a ransom demand for a captive:
// a tenth of a player character's domain output, or a role-scaled
// family allowance for an NPC.
func (s *service) RansomCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error) {
	captor, captive, out := s.resolveCaptivePair(captorID, captiveID)
	if out != nil {
		return out, nil
	}

	amount := s.ransomAmount(captive)

	f := fields(
		"captor", captor.Name(),
		"captive", captive.Name(),
		"amount", amount,
	)
	entry := s.journal.AddPastEvent(journal.EventRansomDemand, s.world.Now, MsgRansomDemanded, f,
		append(captivePersonas(captor, captive), familyPersona(s, captive)...))
	captive.RansomDemand = entry.ID

	return succeed(MsgRansomDemanded, f), nil
}

// ransomAmount prices a captive.
func (s *service) ransomAmount(captive *character.Character) int64 {
	if st, ok := captive.Player(); ok {
		// 10% of the PC's total domain output.
		var output int64
		for _, id := range st.Fiefs {
			if f := s.world.Fief(id); f != nil {
				output += f.AvailableTreasury()
			}
		}
		return output / 10
	}

	// Role-scaled family allowance for an NPC.
	st, _ := captive.NonPlayer()
	switch {
	case st != nil && !captive.Employer.None():
		return st.Salary * 4
	case !captive.FamilyHead.None():
		return int64(s.statureOf(captive) * 100)
	default:
		return 50
	}
}

// ReleaseCaptive frees a captive and sends them home.
func (s *service) ReleaseCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error) {
	captor, captive, out := s.resolveCaptivePair(captorID, captiveID)
	if out != nil {
		return out, nil
	}

	if st, ok := captor.Player(); ok {
		st.RemoveCaptive(captive.ID)
	}
	s.freeCaptive(captive)

	f := fields("captor", captor.Name(), "captive", captive.Name())
	s.journal.AddPastEvent(journal.EventCaptiveReleased, s.world.Now, MsgCaptiveReleased, f, captivePersonas(captor, captive))
	return succeed(MsgCaptiveReleased, f), nil
}

// ExecuteCaptive kills a held captive.
func (s *service) ExecuteCaptive(ctx context.Context, captorID, captiveID shared.CharacterID) (*Outcome, error) {
	captor, captive, out := s.resolveCaptivePair(captorID, captiveID)
	if out != nil {
		return out, nil
	}

	if _, err := s.ProcessDeath(ctx, captive.ID, CauseExecute); err != nil {
		return nil, err
	}

	return succeed(MsgCaptiveExecuted, fields(
		"captor", captor.Name(),
		"captive", captive.Name(),
	)), nil
}

func (s *service) resolveCaptivePair(captorID, captiveID shared.CharacterID) (*character.Character, *character.Character, *Outcome) {
	captor := s.world.Character(captorID)
	if captor == nil {
		return nil, nil, deny(MsgUnknownCharacter, fields("character", string(captorID)))
	}
	captive := s.world.Character(captiveID)
	if captive == nil {
		return nil, nil, deny(MsgUnknownCharacter, fields("character", string(captiveID)))
	}
	if captive.Captor != captor.ID {
		return nil, nil, deny(MsgNotYourCaptive, fields(
			"captor", captor.Name(),
			"captive", captive.Name(),
		))
	}
	return captor, captive, nil
}

func covertPersonas(actor, target *character.Character, detected bool) []journal.Persona {
	personas := []journal.Persona{{CharacterID: actor.ID, Role: "actor"}}
	if detected {
		personas = append(personas, journal.Persona{CharacterID: target.ID, Role: "target"})
	}
	return personas
}

func spyPersonas(actor, opposition *character.Character, detected bool) []journal.Persona {
	personas := []journal.Persona{{CharacterID: actor.ID, Role: "actor"}}
	if detected && opposition != nil {
		personas = append(personas, journal.Persona{CharacterID: opposition.ID, Role: "target"})
	}
	return personas
}

func captivePersonas(captor, captive *character.Character) []journal.Persona {
	return []journal.Persona{
		{CharacterID: captor.ID, Role: "captor"},
		{CharacterID: captive.ID, Role: "captive"},
	}
}

func familyPersona(s *service, captive *character.Character) []journal.Persona {
	head := s.world.FamilyHeadOf(captive)
	if head == nil {
		head = s.world.EmployerOf(captive)
	}
	if head == nil || head.ID == captive.ID {
		return nil
	}
	return []journal.Persona{{CharacterID: head.ID, Role: "kin"}}
}
