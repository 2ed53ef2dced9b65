package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
)

// DeathCause tags why a character died; the journal entry emitted for
// the death varies by cause and role.
type DeathCause string

const (
	CauseNatural    DeathCause = "natural"
	CauseInjury     DeathCause = "injury"
	CauseChildbirth DeathCause = "childbirth"
	CauseSpy        DeathCause = "spy"
	CauseExecute    DeathCause = "execute"
	CauseKidnap     DeathCause = "kidnap"
)

// Role strings recorded on death entries.
const (
	roleEmployee = "employee"
	roleNPC      = "npc"
	rolePlayer   = "player"
	rolePC       = "pc"
)

// ProcessDeath runs the death pipeline. The steps are best-effort:
// a dangling reference is logged and skipped, and the remaining steps
// still run. Calling it again for an already-dead character is a
// no-op.
func (s *service) ProcessDeath(ctx context.Context, id shared.CharacterID, cause DeathCause) (*Outcome, error) {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id))), nil
	}
	if !c.Alive {
		return deny(MsgAlreadyDead, fields("character", c.Name())), nil
	}

	// Role is derived from pre-death affiliations.
	role := deathRole(c)

	c.Alive = false

	s.releaseFromCaptivity(c)
	s.detachFromFief(c)
	s.vacateArmyLeadership(c)
	s.widowSpouse(c)
	s.cancelEngagementOf(ctx, c)
	s.abortPregnanciesOf(c)
	s.vacateBailiffPosts(c)
	s.detachFromRoster(c)
	s.reassignTitles(c)

	// Succession branch.
	var succession *Outcome
	switch role {
	case roleEmployee, roleNPC:
		succession = s.respawnNPC(ctx, c)
	case rolePlayer, rolePC:
		heir := s.resolveHeir(c)
		if heir != nil {
			succession = s.inherit(ctx, c, heir)
		} else {
			succession = s.escheatToKing(ctx, c)
		}
	}

	s.journal.AddPastEvent(journal.EventDeath, s.world.Now, MsgDeath,
		fields(
			"character", c.Name(),
			"cause", string(cause),
			"role", role,
		),
		s.deathPersonas(c, role))

	// A connected player watching through this character falls back
	// to their root character.
	s.world.SwitchControlToRoot(c.ID)

	out := succeed(MsgDeath, fields(
		"character", c.Name(),
		"cause", string(cause),
		"role", role,
	))
	if succession != nil {
		out.Fields["succession"] = succession.Code
	}
	return out, nil
}

func deathRole(c *character.Character) string {
	if st, ok := c.Player(); ok {
		if st.PlayerID != "" {
			return rolePlayer
		}
		return rolePC
	}
	if !c.Employer.None() {
		return roleEmployee
	}
	return roleNPC
}

func (s *service) releaseFromCaptivity(c *character.Character) {
	if !c.Captive() {
		return
	}
	captor := s.world.Character(c.Captor)
	if captor == nil {
		log.Printf("lifecycle: captor %s of %s does not resolve", c.Captor, c.ID)
	} else if st, ok := captor.Player(); ok {
		st.RemoveCaptive(c.ID)
	}
	if f := s.world.Fief(c.Location); f != nil {
		f.ReleasePrisoner(c.ID)
	}
	c.Captor = ""
	c.RansomDemand = 0
}

func (s *service) detachFromFief(c *character.Character) {
	if f := s.world.Fief(c.Location); f != nil {
		f.RemoveCharacter(c.ID)
	}
}

func (s *service) vacateArmyLeadership(c *character.Character) {
	if c.Army.None() {
		return
	}
	a := s.world.Army(c.Army)
	if a == nil {
		log.Printf("lifecycle: army %s led by %s does not resolve", c.Army, c.ID)
	} else {
		a.VacateLeader()
	}
	c.Army = ""
}

func (s *service) widowSpouse(c *character.Character) {
	sp := s.world.Spouse(c)
	if sp != nil {
		sp.Spouse = ""
	}
	c.Spouse = ""
}

// abortPregnanciesOf removes any scheduled birth the decedent is a
// parent of and clears the mother's pregnancy flag.
func (s *service) abortPregnanciesOf(c *character.Character) {
	for {
		ev := s.scheduler.FindFor(journal.EventBirth, c.ID)
		if ev == nil {
			break
		}
		if mother := s.world.Character(ev.Participant("mother")); mother != nil {
			mother.Pregnant = false
		}
		s.scheduler.Remove(ev.ID)
	}
	if c.Pregnant {
		c.Pregnant = false
	}
}

func (s *service) vacateBailiffPosts(c *character.Character) {
	for _, f := range s.world.Fiefs() {
		if f.BailiffID == c.ID {
			f.BailiffID = ""
		}
	}
}

// detachFromRoster removes the character from its employer's or family
// head's roster, including any entourage slot.
func (s *service) detachFromRoster(c *character.Character) {
	head := s.world.EmployerOf(c)
	if head == nil {
		head = s.world.Character(c.FamilyHead)
	}
	if head != nil {
		if st, ok := head.Player(); ok {
			st.RemoveFromEntourage(c.ID)
		}
	}
	if st, ok := c.NonPlayer(); ok {
		st.InEntourage = false
	}
	c.Employer = ""
	c.FamilyHead = ""
}

// reassignTitles hands every held title back to the respective place's
// current owner.
func (s *service) reassignTitles(c *character.Character) {
	for _, id := range c.Titles {
		p := s.world.Place(id)
		if p == nil {
			log.Printf("lifecycle: title place %s held by %s does not resolve", id, c.ID)
			continue
		}
		p.SetTitleHolder(p.Owner())
	}
	c.Titles = nil
}

// resolveHeir finds the successor: the eldest son flagged heir, else
// the eldest son, else the eldest brother.
func (s *service) resolveHeir(c *character.Character) *character.Character {
	sons := s.world.SonsOf(c)
	for _, son := range sons {
		if st, ok := son.NonPlayer(); ok && st.Heir {
			return son
		}
	}
	if len(sons) > 0 {
		return sons[0]
	}
	brothers := s.world.BrothersOf(c)
	if len(brothers) > 0 {
		return brothers[0]
	}
	return nil
}

func (s *service) deathPersonas(c *character.Character, role string) []journal.Persona {
	personas := []journal.Persona{{CharacterID: c.ID, Role: "deceased"}}
	if !c.Father.None() {
		personas = append(personas, journal.Persona{CharacterID: c.Father, Role: "father"})
	}
	if role == rolePlayer || role == rolePC {
		// Player deaths are news for everyone.
		personas = append(personas, journal.ParsePersona(journal.BroadcastPersona))
	}
	return personas
}
