package lifecycle

import (
	"context"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/stats"
	"github.com/talgard/crownlands/internal/world"
)

// GetSpousePregnant attempts conception for a married couple. Success
// schedules a birth for the following season and marks the mother
// pregnant; both partners spend one day regardless of outcome.
func (s *service) GetSpousePregnant(ctx context.Context, husbandID shared.CharacterID) (*Outcome, error) {
	husband := s.world.Character(husbandID)
	if husband == nil {
		return deny(MsgUnknownCharacter, fields("character", string(husbandID))), nil
	}
	if out := s.checksBeforeAction(husband, 1); out != nil {
		return out, nil
	}

	wife := s.world.Spouse(husband)
	if wife == nil || wife.Sex != shared.SexFemale {
		return deny(MsgNotMarried, fields("character", husband.Name())), nil
	}
	if !wife.Alive || wife.Pregnant {
		return deny(MsgPregnancyFailed, fields("mother", nameOf(wife))), nil
	}

	chance := stats.PregnancyChance(wife, husband, s.world.Now)
	conceived := chance > 0 && s.rand.Percent() < chance

	// The attempt costs a day either way.
	s.world.AdjustDays(husband, -1)
	s.world.AdjustDays(wife, -1)

	if !conceived {
		return deny(MsgPregnancyFailed, fields(
			"father", husband.Name(),
			"mother", wife.Name(),
		)), nil
	}

	wife.Pregnant = true
	s.scheduler.Add(journal.EventBirth, s.world.Now.Next(), map[string]shared.CharacterID{
		"mother": wife.ID,
		"father": husband.ID,
	})

	return succeed(MsgPregnancySuccess, fields(
		"father", husband.Name(),
		"mother", wife.Name(),
	)), nil
}

// GiveBirth resolves a scheduled birth: the child NPC is created, then
// stillbirth and maternal death are checked independently. The birth
// entry's message encodes the four outcome combinations.
func (s *service) GiveBirth(ctx context.Context, ev *journal.ScheduledEvent) (*Outcome, error) {
	mother := s.world.Character(ev.Participant("mother"))
	father := s.world.Character(ev.Participant("father"))
	if mother == nil {
		// The scheduler's caller drops births with a dead parent; a
		// missing mother is a referential gap, nothing to deliver.
		return deny(MsgUnknownCharacter, fields("character", string(ev.Participant("mother")))), nil
	}

	mother.Pregnant = false

	child := s.newChild(mother, father)

	stillborn := stats.DeathRoll(child, s.world.Now, stats.ChildbirthDeath, s.rand)

	maternalCtx := stats.ChildbirthDeath
	if stillborn {
		maternalCtx = stats.StillbirthMaternalDeath
	}
	motherDied := stats.DeathRoll(mother, s.world.Now, maternalCtx, s.rand)

	if !stillborn {
		child.FamilyHead = familyHeadForChild(s, mother, father)
		child.Location = mother.Location
		if f := s.world.Fief(mother.Location); f != nil {
			f.AddCharacter(child.ID)
		}
		if err := s.world.AddCharacter(child); err != nil {
			return nil, err
		}
	}

	code := MsgBirth
	switch {
	case stillborn && motherDied:
		code = MsgBirthBothLost
	case stillborn:
		code = MsgBirthStillborn
	case motherDied:
		code = MsgBirthMotherDied
	}

	personas := []journal.Persona{{CharacterID: mother.ID, Role: "mother"}}
	if father != nil {
		personas = append(personas, journal.Persona{CharacterID: father.ID, Role: "father"})
	}
	s.journal.AddPastEvent(journal.EventBirthAnnounced, s.world.Now, code,
		fields(
			"mother", mother.Name(),
			"father", nameOf(father),
			"child", child.Name(),
		), personas)

	if motherDied {
		if _, err := s.ProcessDeath(ctx, mother.ID, CauseChildbirth); err != nil {
			return nil, err
		}
	}

	return succeed(code, fields(
		"mother", mother.Name(),
		"child", child.Name(),
	)), nil
}

// newChild seeds a newborn from its parents.
func (s *service) newChild(mother, father *character.Character) *character.Character {
	sex := shared.SexMale
	if s.rand.Percent() < 50 {
		sex = shared.SexFemale
	}

	familyName := mother.FamilyName
	if father != nil && father.FamilyName != "" {
		familyName = father.FamilyName
	}

	child, _ := character.New(
		shared.CharacterID("chr_"+s.ids.New()),
		s.pickName(sex), familyName, sex, s.world.Now,
		s.rand.Between(8, 12),
	)
	child.Language = mother.Language
	child.Nation = mother.Nation
	child.Mother = mother.ID
	if father != nil {
		child.Father = father.ID
	}
	child.Virility = s.rand.Between(1, 9)
	child.BaseManagement = s.rand.Between(1, 9)
	child.BaseCombat = s.rand.Between(1, 9)
	child.Kind = character.NonPlayerKind(&character.NonPlayerState{})
	child.Days = world.DayAllowance(child)
	return child
}

// familyHeadForChild attaches the child to the father's household when
// it exists, else the mother's.
func familyHeadForChild(s *service, mother, father *character.Character) shared.CharacterID {
	if head := s.world.FamilyHeadOf(father); head != nil {
		return head.ID
	}
	if head := s.world.FamilyHeadOf(mother); head != nil {
		return head.ID
	}
	return ""
}
