package lifecycle

import (
	"context"

	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/journal"
)

// GrantTitle bestows the title of an owned place on another character.
// The previous holder, if any, loses it. Granting to oneself is how an
// owner reclaims a bestowed title.
func (s *service) GrantTitle(ctx context.Context, granterID, granteeID shared.CharacterID, placeID shared.PlaceID) (*Outcome, error) {
	granter := s.world.Character(granterID)
	if granter == nil {
		return deny(MsgUnknownCharacter, fields("character", string(granterID))), nil
	}
	grantee := s.world.Character(granteeID)
	if grantee == nil {
		return deny(MsgUnknownCharacter, fields("character", string(granteeID))), nil
	}
	place := s.world.Place(placeID)
	if place == nil {
		return deny(MsgUnknownPlace, fields("place", string(placeID))), nil
	}

	if out := s.checksBeforeAction(granter, 1); out != nil {
		return out, nil
	}
	if place.Owner() != granter.ID {
		return deny(MsgTitleNotHeld, fields(
			"granter", granter.Name(),
			"place", place.Name(),
		)), nil
	}
	if !grantee.Alive {
		return deny(MsgCharacterDead, fields("character", grantee.Name())), nil
	}

	s.world.AdjustDays(granter, -1)

	if prev := s.world.Character(place.TitleHolder()); prev != nil {
		prev.RemoveTitle(placeID)
	}
	place.SetTitleHolder(grantee.ID)
	grantee.AddTitle(placeID)

	f := fields(
		"granter", granter.Name(),
		"grantee", grantee.Name(),
		"place", place.Name(),
	)
	s.journal.AddPastEvent(journal.EventTitleGranted, s.world.Now, MsgTitleGranted, f, []journal.Persona{
		{CharacterID: granter.ID, Role: "granter"},
		{CharacterID: grantee.ID, Role: "grantee"},
		journal.ParsePersona(journal.BroadcastPersona),
	})
	return succeed(MsgTitleGranted, f), nil
}
