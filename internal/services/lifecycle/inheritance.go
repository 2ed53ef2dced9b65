package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
)

// inherit promotes the NPC heir into the deceased's place: the heir
// becomes a player character carrying the purse, rosters, holdings and
// obligations of the deceased, and any session rooted at the deceased
// rebinds to the promoted character. Steps are best-effort; a dangling
// reference is logged and skipped.
func (s *service) inherit(ctx context.Context, deceased, heir *character.Character) *Outcome {
	dst, ok := deceased.Player()
	if !ok {
		log.Printf("lifecycle: inherit called for non-player %s", deceased.ID)
		return deny(MsgNotAPlayer, fields("character", deceased.Name()))
	}

	promoted := &character.PlayerState{
		PlayerID:  dst.PlayerID,
		Purse:     dst.Purse,
		Fiefs:     dst.Fiefs,
		Provinces: dst.Provinces,
		Armies:    dst.Armies,
		Sieges:    dst.Sieges,
		Entourage: dst.Entourage,
		Captives:  dst.Captives,
		Proposals: dst.Proposals,
	}
	heir.Kind = character.PlayerKind(promoted)
	heir.Employer = ""
	heir.FamilyHead = "" // player characters head their own family

	// Rosters: employees and family members follow the heir.
	for _, npc := range s.world.EmployeesOf(deceased.ID) {
		npc.Employer = heir.ID
	}
	for _, npc := range s.world.FamilyOf(deceased.ID) {
		if npc.ID != heir.ID {
			npc.FamilyHead = heir.ID
		}
	}

	// Holdings: ownership pointers retarget, including ancestral
	// ownership across every fief.
	for _, id := range promoted.Fiefs {
		f := s.world.Fief(id)
		if f == nil {
			log.Printf("lifecycle: inherited fief %s does not resolve", id)
			continue
		}
		f.TransferOwnership(heir.ID)
	}
	for _, id := range promoted.Provinces {
		p := s.world.Province(id)
		if p == nil {
			log.Printf("lifecycle: inherited province %s does not resolve", id)
			continue
		}
		p.TransferOwnership(heir.ID)
	}
	for _, f := range s.world.Fiefs() {
		if f.AncestralOwner == deceased.ID {
			f.AncestralOwner = heir.ID
		}
	}
	for _, k := range s.world.Kingdoms() {
		if k.Owner() == deceased.ID {
			k.TransferOwnership(heir.ID)
		}
	}

	// Armies and sieges.
	for _, id := range promoted.Armies {
		a := s.world.Army(id)
		if a == nil {
			log.Printf("lifecycle: inherited army %s does not resolve", id)
			continue
		}
		a.OwnerID = heir.ID
	}
	for _, id := range promoted.Sieges {
		siege := s.world.Siege(id)
		if siege == nil {
			log.Printf("lifecycle: inherited siege %s does not resolve", id)
			continue
		}
		siege.Besieger = heir.ID
	}

	// Titles the deceased held were handed back to the place owners by
	// the death pipeline; with ownership now retargeted, grant them to
	// the promoted heir.
	for _, f := range s.world.Fiefs() {
		if f.TitleHolder() == deceased.ID {
			f.SetTitleHolder(heir.ID)
			heir.AddTitle(f.ID())
		}
	}
	for _, id := range promoted.Provinces {
		if p := s.world.Province(id); p != nil && p.TitleHolder() == deceased.ID {
			p.SetTitleHolder(heir.ID)
			heir.AddTitle(p.ID())
		}
	}
	for _, k := range s.world.Kingdoms() {
		if k.TitleHolder() == deceased.ID {
			k.SetTitleHolder(heir.ID)
			heir.AddTitle(k.ID())
		}
	}

	// Captives change gaoler.
	for _, id := range promoted.Captives {
		captive := s.world.Character(id)
		if captive == nil {
			log.Printf("lifecycle: inherited captive %s does not resolve", id)
			continue
		}
		captive.Captor = heir.ID
	}

	// Open ownership challenges follow the bloodline.
	s.world.RetargetChallenger(deceased.ID, heir.ID)

	// A played character's session rebinds to the promoted heir.
	s.world.RebindSessions(deceased.ID, heir.ID)

	// The deceased no longer owns anything; the state is reset in
	// place so existing references observe the cleared holdings.
	*dst = character.PlayerState{}

	return succeed(MsgInheritance, fields(
		"deceased", deceased.Name(),
		"heir", heir.Name(),
	))
}
