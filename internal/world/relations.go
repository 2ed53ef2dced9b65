package world

import (
	"sort"

	"github.com/talgard/crownlands/internal/domain/army"
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/stats"
)

// Relationship lookups. Each resolves a weak id reference through the
// registries and returns nil when the link is absent or dangling.

// Father of the character.
func (w *World) Father(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	return w.Character(c.Father)
}

// Mother of the character.
func (w *World) Mother(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	return w.Character(c.Mother)
}

// Spouse of the character.
func (w *World) Spouse(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	return w.Character(c.Spouse)
}

// Fiancee of the character.
func (w *World) Fiancee(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	return w.Character(c.Fiancee)
}

// FamilyHeadOf resolves the family head: the character itself for a
// player character, its FamilyHead link for an NPC.
func (w *World) FamilyHeadOf(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	if c.IsPlayer() {
		return c
	}
	return w.Character(c.FamilyHead)
}

// EmployerOf resolves the employer link (NPCs only).
func (w *World) EmployerOf(c *character.Character) *character.Character {
	if c == nil {
		return nil
	}
	return w.Character(c.Employer)
}

// ArmyLed resolves the army the character leads.
func (w *World) ArmyLed(c *character.Character) *army.Army {
	if c == nil {
		return nil
	}
	return w.Army(c.Army)
}

// EmployeesOf lists living NPCs employed by the given character.
func (w *World) EmployeesOf(id shared.CharacterID) []*character.Character {
	return w.collect(func(c *character.Character) bool {
		return c.Alive && c.Employer == id
	})
}

// FamilyOf lists living NPCs whose family head is the given character.
func (w *World) FamilyOf(id shared.CharacterID) []*character.Character {
	return w.collect(func(c *character.Character) bool {
		return c.Alive && c.FamilyHead == id
	})
}

// SonsOf lists living sons of the character, eldest first.
func (w *World) SonsOf(c *character.Character) []*character.Character {
	if c == nil {
		return nil
	}
	sons := w.collect(func(s *character.Character) bool {
		return s.Alive && s.Sex == shared.SexMale && (s.Father == c.ID || s.Mother == c.ID)
	})
	sortEldestFirst(sons)
	return sons
}

// BrothersOf lists living brothers of the character, eldest first.
func (w *World) BrothersOf(c *character.Character) []*character.Character {
	if c == nil || c.Father.None() {
		return nil
	}
	brothers := w.collect(func(b *character.Character) bool {
		return b.Alive && b.ID != c.ID && b.Sex == shared.SexMale && b.Father == c.Father
	})
	sortEldestFirst(brothers)
	return brothers
}

// SameFamily reports whether the two characters resolve to the same
// family head.
func (w *World) SameFamily(a, b *character.Character) bool {
	ha := w.FamilyHeadOf(a)
	hb := w.FamilyHeadOf(b)
	return ha != nil && hb != nil && ha.ID == hb.ID
}

// RankStature returns the stature value of the highest-ranked title the
// character holds, 0 when untitled.
func (w *World) RankStature(c *character.Character) float64 {
	if c == nil {
		return 0
	}
	var best float64
	for _, id := range c.Titles {
		if p := w.Place(id); p != nil {
			if v := p.Rank().StatureValue(); v > best {
				best = v
			}
		}
	}
	return best
}

// AdjustStature applies a delta to the character's stature modifier.
// When the world's stature cap is set, the delta is trimmed so the
// derived current stature stays within [1,9].
func (w *World) AdjustStature(c *character.Character, delta float64) {
	if c == nil {
		return
	}
	if w.StatureCapped {
		delta = stats.CapModifierDelta(c, w.Now, w.RankStature(c), delta)
	}
	c.StatureModifier += delta
}

// HomeFief resolves the fief a character "belongs" to: a PC's first
// owned fief, an NPC's employer's or family head's home fief, falling
// back to the current location.
func (w *World) HomeFief(c *character.Character) *place.Fief {
	if c == nil {
		return nil
	}
	if st, ok := c.Player(); ok && len(st.Fiefs) > 0 {
		return w.Fief(st.Fiefs[0])
	}
	if head := w.EmployerOf(c); head != nil {
		if f := w.HomeFief(head); f != nil {
			return f
		}
	}
	if head := w.Character(c.FamilyHead); head != nil {
		if f := w.HomeFief(head); f != nil {
			return f
		}
	}
	return w.Fief(c.Location)
}

// KingOf resolves the king governing a fief: the owner of the kingdom
// the fief's province belongs to.
func (w *World) KingOf(f *place.Fief) *character.Character {
	if f == nil {
		return nil
	}
	prov := w.Province(f.ProvinceID)
	if prov == nil {
		return nil
	}
	kingdom := w.Kingdom(prov.KingdomID)
	if kingdom == nil {
		return nil
	}
	return w.Character(kingdom.Owner())
}

// FiefsByLanguage lists fiefs speaking the given language.
func (w *World) FiefsByLanguage(language string) []*place.Fief {
	var out []*place.Fief
	for _, f := range w.Fiefs() {
		if f.Language == language {
			out = append(out, f)
		}
	}
	return out
}

// InBesiegedKeep reports whether the character is inside a fief under
// siege.
func (w *World) InBesiegedKeep(c *character.Character) bool {
	if c == nil {
		return false
	}
	f := w.Fief(c.Location)
	return f != nil && f.UnderSiege()
}

// PlayerCharacters lists living player characters; a dead PC no longer
// resolves here.
func (w *World) PlayerCharacters() []*character.Character {
	return w.collect(func(c *character.Character) bool {
		return c.Alive && c.IsPlayer()
	})
}

func (w *World) collect(match func(*character.Character) bool) []*character.Character {
	var out []*character.Character
	for _, c := range w.characters {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortEldestFirst(cs []*character.Character) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Born.Before(cs[j].Born) })
}
