package lifecycle

import (
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Guard predicates. A nil return means the check passed; otherwise the
// returned denial is the outcome to surface.

// ChecksBeforeAction gates any active operation: the character must
// resolve, be alive, be free, and have the required days left.
func (s *service) ChecksBeforeAction(id shared.CharacterID, days float64) *Outcome {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id)))
	}
	return s.checksBeforeAction(c, days)
}

func (s *service) checksBeforeAction(c *character.Character, days float64) *Outcome {
	if !c.Alive {
		return deny(MsgCharacterDead, fields("character", c.Name()))
	}
	if c.Captive() {
		return deny(MsgCharacterCaptive, fields("character", c.Name()))
	}
	if c.Days < days {
		return deny(MsgNoDaysLeft, fields(
			"character", c.Name(),
			"required", days,
			"remaining", c.Days,
		))
	}
	return nil
}

// ChecksBeforeSpending additionally gates the purse of the character's
// player-character side.
func (s *service) ChecksBeforeSpending(id shared.CharacterID, amount int64) *Outcome {
	c := s.world.Character(id)
	if c == nil {
		return deny(MsgUnknownCharacter, fields("character", string(id)))
	}
	st, ok := c.Player()
	if !ok {
		return deny(MsgNotAPlayer, fields("character", c.Name()))
	}
	if st.Purse < amount {
		return deny(MsgNoFunds, fields(
			"character", c.Name(),
			"required", amount,
			"available", st.Purse,
		))
	}
	return nil
}

// checksSameFief gates operations requiring actor and target to share
// a fief.
func (s *service) checksSameFief(actor, target *character.Character) *Outcome {
	if actor.Location.None() || actor.Location != target.Location {
		return deny(MsgWrongLocation, fields(
			"character", actor.Name(),
			"target", target.Name(),
		))
	}
	return nil
}

// fields builds an interpolation map from key/value pairs.
func fields(kv ...any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		out[key] = kv[i+1]
	}
	return out
}
