package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/talgard/crownlands/internal/config"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/engine"
	cerr "github.com/talgard/crownlands/internal/errors"
	"github.com/talgard/crownlands/internal/random"
	"github.com/talgard/crownlands/internal/repositories/worlds"
	"github.com/talgard/crownlands/internal/services"
	"github.com/talgard/crownlands/internal/world"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("World ID: %s", cfg.World.ID)
	log.Printf("Season interval: %s", cfg.World.SeasonInterval)

	// Keep Redis client for cleanup
	var redisClient *redis.Client
	var worldRepo worlds.Repository

	// Try to connect to Redis if URL is provided
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory repository")
		} else {
			redisClient = redis.NewClient(opts)

			// Test connection
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory repository")
				redisClient = nil
			} else {
				cancel()
				log.Println("Successfully connected to Redis")
				worldRepo = worlds.NewRedisRepository(&worlds.RedisRepoConfig{
					Client: redisClient,
				})
				log.Println("Using Redis for persistence")
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repository")
	}
	if worldRepo == nil {
		worldRepo = worlds.NewInMemoryRepository()
	}

	// Load the saved world, or start a fresh one
	ctx := context.Background()
	var w *world.World
	snap, err := worldRepo.Load(ctx, cfg.World.ID)
	switch {
	case err == nil:
		w = world.Restore(snap)
		log.Printf("Restored world %s at %s with %d characters",
			cfg.World.ID, w.Now, len(w.Characters()))
	case cerr.IsNotFound(err):
		w = world.New(shared.Date{
			Year:   cfg.World.StartYear,
			Season: shared.Season(cfg.World.StartSeason),
		})
		log.Printf("Starting fresh world %s at %s", cfg.World.ID, w.Now)
	default:
		log.Fatalf("Failed to load world %s: %v", cfg.World.ID, err)
	}

	src := random.New(cfg.World.Seed)

	// Create service provider
	serviceProvider := services.NewProvider(&services.ProviderConfig{
		World:           w,
		WorldRepository: worldRepo,
		Random:          src,
	})

	// Create the season engine
	engineConfig := &engine.Config{
		World:     w,
		Lifecycle: serviceProvider.LifecycleService,
		Challenge: serviceProvider.ChallengeService,
		Scheduler: serviceProvider.Scheduler,
		Random:    src,
		Interval:  cfg.World.SeasonInterval,
	}
	if cfg.World.SaveEachSeason {
		engineConfig.Repository = worldRepo
		engineConfig.WorldID = cfg.World.ID
	}
	eng := engine.New(engineConfig)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if runErr := eng.Run(runCtx); runErr != nil && runErr != context.Canceled {
			log.Printf("Engine stopped: %v", runErr)
		}
	}()

	log.Println("World is running. Press CTRL-C to exit.")
	<-runCtx.Done()

	// Save on the way out
	saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := w.Exclusive(func() error {
		return worldRepo.Save(saveCtx, cfg.World.ID, w.Snapshot())
	}); err != nil {
		log.Printf("Failed to save world on shutdown: %v", err)
	} else {
		log.Println("World saved")
	}

	if redisClient != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis client: %v", closeErr)
		}
	}

	log.Println("Shutting down gracefully...")
}
