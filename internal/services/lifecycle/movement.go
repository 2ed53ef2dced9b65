package lifecycle

import (
	"context"

	"github.com/talgard/crownlands/internal/domain/shared"
)

// MoveCharacter relocates a character to a destination fief for one
// day of travel. A player character's entourage travels with them.
// Characters under siege cannot leave the keep.
func (s *service) MoveCharacter(ctx context.Context, id shared.CharacterID, dest shared.PlaceID) (*Outcome, error) {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id))), nil
	}
	target := s.world.Fief(dest)
	if target == nil {
		return deny(MsgUnknownPlace, fields("place", string(dest))), nil
	}

	if out := s.checksBeforeAction(c, 1); out != nil {
		return out, nil
	}
	if s.world.InBesiegedKeep(c) {
		return deny(MsgWrongLocation, fields(
			"character", c.Name(),
			"place", string(c.Location),
		)), nil
	}
	if c.Location == dest {
		return deny(MsgWrongLocation, fields(
			"character", c.Name(),
			"place", target.Name(),
		)), nil
	}

	s.world.AdjustDays(c, -1)
	origin := c.Location
	s.relocate(c, dest)

	// The entourage rides along, but only those standing in the same
	// fief; a detached bailiff stays at their post.
	if st, ok := c.Player(); ok {
		for _, eid := range st.Entourage {
			npc := s.world.Character(eid)
			if npc == nil || !npc.Alive || npc.Captive() {
				continue
			}
			if npc.Location != origin {
				continue
			}
			if f := s.world.Fief(origin); f != nil && f.BailiffID == npc.ID {
				continue
			}
			s.relocate(npc, dest)
		}
	}

	// Arriving at the head of a queued route consumes it.
	if len(c.Route) > 0 && c.Route[0] == dest {
		c.Route = c.Route[1:]
	}

	return succeed(MsgMoved, fields(
		"character", c.Name(),
		"place", target.Name(),
	)), nil
}

// SetRoute queues destinations for a character to walk over the coming
// days, one fief a day. The engine advances the head of the route
// whenever the character has a day to spare.
func (s *service) SetRoute(ctx context.Context, id shared.CharacterID, route []shared.PlaceID) (*Outcome, error) {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id))), nil
	}
	if !c.Alive {
		return deny(MsgCharacterDead, fields("character", c.Name())), nil
	}
	if c.Captive() {
		return deny(MsgCharacterCaptive, fields("character", c.Name())), nil
	}
	for _, pid := range route {
		if s.world.Fief(pid) == nil {
			return deny(MsgUnknownPlace, fields("place", string(pid))), nil
		}
	}

	c.Route = append([]shared.PlaceID(nil), route...)

	return succeed(MsgRouteSet, fields(
		"character", c.Name(),
		"stops", len(route),
	)), nil
}
