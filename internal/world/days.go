package world

import (
	"log"
	"sync"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
)

// BaseDayAllowance is the seasonal day budget before trait modifiers.
const BaseDayAllowance = 30

// DayAllowance is the character's seasonal day budget: the base scaled
// by the TIME trait effect.
func DayAllowance(c *character.Character) float64 {
	return BaseDayAllowance * (1 + c.TraitEffect(shared.StatTime))
}

// entourageLock returns the per-PC lock guarding entourage day fan-out.
func (w *World) entourageLock(pc shared.CharacterID) *sync.Mutex {
	w.entourageLocksMu.Lock()
	defer w.entourageLocksMu.Unlock()
	l, ok := w.entourageLocks[pc]
	if !ok {
		l = &sync.Mutex{}
		w.entourageLocks[pc] = l
	}
	return l
}

// SetDays sets a character's remaining days, clamped to [0, allowance].
// For a player character the new value fans out to every entourage
// member under the per-PC entourage lock before the call returns, so
// an entourage member's days always equal its PC's days.
func (w *World) SetDays(c *character.Character, days float64) {
	if c == nil {
		return
	}

	clamp := func(ch *character.Character, d float64) float64 {
		if d < 0 {
			d = 0
		}
		if max := DayAllowance(ch); d > max {
			d = max
		}
		return d
	}

	st, isPC := c.Player()
	if !isPC {
		c.Days = clamp(c, days)
		return
	}

	lock := w.entourageLock(c.ID)
	lock.Lock()
	defer lock.Unlock()

	c.Days = clamp(c, days)
	for _, id := range st.Entourage {
		member := w.Character(id)
		if member == nil {
			log.Printf("world: entourage member %s of %s does not resolve", id, c.ID)
			continue
		}
		member.Days = c.Days
	}
}

// AdjustDays applies a delta through SetDays.
func (w *World) AdjustDays(c *character.Character, delta float64) {
	if c == nil {
		return
	}
	w.SetDays(c, c.Days+delta)
}

// ResetDays restores the full seasonal allowance, fanning out to the
// entourage for player characters. Called once per season tick.
func (w *World) ResetDays(c *character.Character) {
	w.SetDays(c, DayAllowance(c))
}
