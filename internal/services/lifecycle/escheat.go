package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
)

// escheatToKing reverts a dead, heirless player character's property to
// the crown: holdings and titles pass to the king, employees join the
// king's roster, family members are cast out, captives go free, and
// every siege, army and challenge the deceased ran is wound down.
// Best-effort like the rest of the death pipeline.
func (s *service) escheatToKing(ctx context.Context, deceased *character.Character) *Outcome {
	dst, ok := deceased.Player()
	if !ok {
		log.Printf("lifecycle: escheat called for non-player %s", deceased.ID)
		return deny(MsgNotAPlayer, fields("character", deceased.Name()))
	}

	king := s.findKing(deceased)
	if king == nil {
		log.Printf("lifecycle: no king resolvable for escheat of %s", deceased.ID)
	}

	// Sieges end, armies disband.
	for _, id := range dst.Sieges {
		s.world.EndSiege(id)
	}
	for _, id := range dst.Armies {
		a := s.world.Army(id)
		if a == nil {
			log.Printf("lifecycle: escheated army %s does not resolve", id)
			continue
		}
		if leader := s.world.Character(a.LeaderID); leader != nil {
			leader.Army = ""
		}
		s.world.RemoveArmy(id)
	}

	// Employees transfer to the king's roster; family members are cast
	// out entirely.
	for _, npc := range s.world.EmployeesOf(deceased.ID) {
		if king != nil {
			npc.Employer = king.ID
		} else {
			npc.Employer = ""
		}
	}
	for _, npc := range s.world.FamilyOf(deceased.ID) {
		s.castOut(ctx, npc)
	}

	// Holdings pass to the crown.
	for _, id := range dst.Fiefs {
		f := s.world.Fief(id)
		if f == nil {
			log.Printf("lifecycle: escheated fief %s does not resolve", id)
			continue
		}
		s.transferToKing(f, king)
	}
	for _, id := range dst.Provinces {
		p := s.world.Province(id)
		if p == nil {
			log.Printf("lifecycle: escheated province %s does not resolve", id)
			continue
		}
		s.transferToKing(p, king)
	}

	// Challenges raised by the deceased die with them.
	s.world.CancelChallengesBy(deceased.ID)

	// Captives go free.
	for _, id := range dst.Captives {
		captive := s.world.Character(id)
		if captive == nil {
			log.Printf("lifecycle: escheated captive %s does not resolve", id)
			continue
		}
		s.freeCaptive(captive)
	}

	s.world.DropVictories(deceased.ID)

	// The record keeps its kind but owns nothing. The state is reset
	// in place so existing references observe the cleared holdings.
	*dst = character.PlayerState{PlayerID: dst.PlayerID}

	kingName := ""
	if king != nil {
		kingName = king.Name()
	}
	return succeed(MsgEscheat, fields(
		"deceased", deceased.Name(),
		"king", kingName,
	))
}

// findKing resolves the crown: the king governing the deceased's
// location, else the first owned fief, else any kingdom owner.
func (s *service) findKing(c *character.Character) *character.Character {
	if king := s.world.KingOf(s.world.Fief(c.Location)); king != nil && king.Alive && king.ID != c.ID {
		return king
	}
	if st, ok := c.Player(); ok {
		for _, id := range st.Fiefs {
			if king := s.world.KingOf(s.world.Fief(id)); king != nil && king.Alive && king.ID != c.ID {
				return king
			}
		}
	}
	for _, ch := range s.world.Characters() {
		if !ch.Alive || ch.ID == c.ID {
			continue
		}
		for _, id := range ch.Titles {
			if p := s.world.Place(id); p != nil && p.Rank() == place.RankKingdom {
				return ch
			}
		}
	}
	return nil
}

func (s *service) transferToKing(p place.Place, king *character.Character) {
	if king == nil {
		p.TransferOwnership("")
		p.SetTitleHolder("")
		return
	}
	p.TransferOwnership(king.ID)
	p.SetTitleHolder(king.ID)
	if st, ok := king.Player(); ok {
		switch p.Rank() {
		case place.RankFief:
			st.AddFief(p.ID())
		case place.RankProvince:
			st.AddProvince(p.ID())
		}
	}
	king.AddTitle(p.ID())
}

// castOut severs a family member from the dissolved house: no family,
// no salary, no posts, no pending marriage or pregnancy.
func (s *service) castOut(ctx context.Context, npc *character.Character) {
	npc.FamilyHead = ""
	if st, ok := npc.NonPlayer(); ok {
		st.Salary = 0
		st.InEntourage = false
		st.Heir = false
	}
	s.vacateBailiffPosts(npc)
	s.reassignTitles(npc)
	s.cancelEngagementOf(ctx, npc)
	s.abortPregnanciesOf(npc)
}

// freeCaptive clears captivity and sends the captive to their own home
// fief.
func (s *service) freeCaptive(captive *character.Character) {
	if f := s.world.Fief(captive.Location); f != nil {
		f.ReleasePrisoner(captive.ID)
		f.RemoveCharacter(captive.ID)
	}
	captive.Captor = ""
	captive.RansomDemand = 0
	if home := s.world.HomeFief(captive); home != nil {
		captive.Location = home.ID()
		home.AddCharacter(captive.ID)
	}
}
