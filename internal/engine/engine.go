// Package engine drives the season clock: each tick advances the
// calendar and sweeps the whole world under the exclusive section.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/random"
	"github.com/talgard/crownlands/internal/repositories/worlds"
	"github.com/talgard/crownlands/internal/services/challenge"
	"github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/stats"
	"github.com/talgard/crownlands/internal/world"
)

// DefaultInterval is how much wall time a season lasts.
const DefaultInterval = 6 * time.Hour

// Config holds the collaborators of the engine.
type Config struct {
	World     *world.World
	Lifecycle lifecycle.Service
	Challenge challenge.Service
	Scheduler *journal.Scheduler
	Random    random.Source

	// Repository, when set, persists a snapshot under WorldID after
	// every tick.
	Repository worlds.Repository
	WorldID    string

	// Interval between season ticks; DefaultInterval when zero.
	Interval time.Duration
}

// Engine owns the season tick.
type Engine struct {
	world     *world.World
	lifecycle lifecycle.Service
	challenge challenge.Service
	scheduler *journal.Scheduler
	rand      random.Source
	repo      worlds.Repository
	worldID   string
	interval  time.Duration
}

// New creates the engine.
func New(cfg *Config) *Engine {
	if cfg == nil || cfg.World == nil {
		panic("world is required")
	}
	if cfg.Lifecycle == nil || cfg.Challenge == nil {
		panic("lifecycle and challenge services are required")
	}
	if cfg.Scheduler == nil {
		panic("scheduler is required")
	}

	e := &Engine{
		world:     cfg.World,
		lifecycle: cfg.Lifecycle,
		challenge: cfg.Challenge,
		scheduler: cfg.Scheduler,
		rand:      cfg.Random,
		repo:      cfg.Repository,
		worldID:   cfg.WorldID,
		interval:  cfg.Interval,
	}
	if e.rand == nil {
		e.rand = random.New(0)
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}
	return e
}

// Run ticks seasons until the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Tick(ctx); err != nil {
				log.Printf("engine: tick failed: %v", err)
			}
		}
	}
}

// Tick runs one season: advance the calendar, sweep every character,
// dispatch due scheduled events, and tally open challenges. The whole
// sweep runs inside the world's exclusive section.
func (e *Engine) Tick(ctx context.Context) error {
	return e.world.Exclusive(func() error {
		e.world.Now = e.world.Now.Next()
		log.Printf("engine: season tick, now %s", e.world.Now)

		for _, c := range e.world.Characters() {
			if !c.Alive {
				continue
			}
			e.sweepCharacter(ctx, c)
		}

		e.dispatchDue(ctx)

		if err := e.challenge.Tick(ctx); err != nil {
			log.Printf("engine: challenge tally failed: %v", err)
		}

		// Snapshots hold live entity pointers, so the save happens
		// inside the exclusive section too.
		if e.repo != nil {
			if err := e.repo.Save(ctx, e.worldID, e.world.Snapshot()); err != nil {
				log.Printf("engine: saving world %s: %v", e.worldID, err)
			}
		}
		return nil
	})
}

// sweepCharacter runs the per-season upkeep of one living character:
// ailments decay, the day allowance resets, natural death is rolled,
// and a queued route advances while days remain.
func (e *Engine) sweepCharacter(ctx context.Context, c *character.Character) {
	c.DecayAilments()
	e.world.ResetDays(c)

	if stats.DeathRoll(c, e.world.Now, stats.NaturalDeath, e.rand) {
		if _, err := e.lifecycle.ProcessDeath(ctx, c.ID, lifecycle.CauseNatural); err != nil {
			log.Printf("engine: death pipeline for %s: %v", c.ID, err)
		}
		return
	}

	for len(c.Route) > 0 && c.Days >= 1 {
		out, err := e.lifecycle.MoveCharacter(ctx, c.ID, c.Route[0])
		if err != nil {
			log.Printf("engine: route step for %s: %v", c.ID, err)
			return
		}
		if !out.Success {
			// A blocked route stops the walk until the player redraws it.
			log.Printf("engine: route for %s blocked: %s", c.ID, out.Code)
			c.Route = nil
			return
		}
	}
}

// dispatchDue resolves the scheduled events that have come due.
func (e *Engine) dispatchDue(ctx context.Context) {
	for _, ev := range e.scheduler.DueAt(e.world.Now) {
		switch ev.Type {
		case journal.EventBirth:
			if _, err := e.lifecycle.GiveBirth(ctx, ev); err != nil {
				log.Printf("engine: birth event %d: %v", ev.ID, err)
			}
			e.scheduler.Remove(ev.ID)

		case journal.EventMarriage:
			out, err := e.lifecycle.CompleteMarriage(ctx, ev)
			if err != nil {
				log.Printf("engine: marriage event %d: %v", ev.ID, err)
				e.scheduler.Remove(ev.ID)
				continue
			}
			if out.Code == lifecycle.MsgMarriagePostponed {
				e.scheduler.Postpone(ev.ID)
				continue
			}
			e.scheduler.Remove(ev.ID)

		default:
			log.Printf("engine: dropping unknown scheduled event %d type %s", ev.ID, ev.Type)
			e.scheduler.Remove(ev.ID)
		}
	}
}
