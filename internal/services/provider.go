// Package services wires the service graph together.
package services

import (
	"github.com/talgard/crownlands/internal/journal"
	"github.com/talgard/crownlands/internal/random"
	"github.com/talgard/crownlands/internal/repositories/worlds"
	challengeService "github.com/talgard/crownlands/internal/services/challenge"
	lifecycleService "github.com/talgard/crownlands/internal/services/lifecycle"
	"github.com/talgard/crownlands/internal/uuid"
	"github.com/talgard/crownlands/internal/world"
)

// Provider holds all service instances
type Provider struct {
	LifecycleService lifecycleService.Service
	ChallengeService challengeService.Service

	Journal   *journal.Journal
	Scheduler *journal.Scheduler

	WorldRepository worlds.Repository
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	World           *world.World
	WorldRepository worlds.Repository

	// Notifier pushes journal entries to connected players; nil means
	// entries only land in inboxes.
	Notifier journal.Notifier

	Random random.Source
	IDs    uuid.Generator
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil || cfg.World == nil {
		panic("world is required")
	}

	// Use in-memory repository if none provided
	worldRepo := cfg.WorldRepository
	if worldRepo == nil {
		worldRepo = worlds.NewInMemoryRepository()
	}

	scheduler := journal.NewScheduler()
	jrnl := journal.NewJournal(&journal.Config{
		Roster:   cfg.World,
		Notifier: cfg.Notifier,
	})

	lifecycle := lifecycleService.NewService(&lifecycleService.ServiceConfig{
		World:     cfg.World,
		Journal:   jrnl,
		Scheduler: scheduler,
		Random:    cfg.Random,
		IDs:       cfg.IDs,
	})

	challenge := challengeService.NewService(&challengeService.ServiceConfig{
		World:     cfg.World,
		Journal:   jrnl,
		Lifecycle: lifecycle,
		IDs:       cfg.IDs,
	})

	return &Provider{
		LifecycleService: lifecycle,
		ChallengeService: challenge,
		Journal:          jrnl,
		Scheduler:        scheduler,
		WorldRepository:  worldRepo,
	}
}
