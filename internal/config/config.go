package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	World WorldConfig
	Redis RedisConfig
}

// WorldConfig holds world simulation configuration
type WorldConfig struct {
	// ID names the world in persistence.
	ID string

	// SeasonInterval is the wall time between season ticks.
	SeasonInterval time.Duration

	// StartYear and StartSeason seed the calendar of a fresh world.
	// Seasons count 0 (spring) through 3 (winter).
	StartYear   int
	StartSeason int

	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64

	// SaveEachSeason persists a snapshot after every tick.
	SaveEachSeason bool
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		World: WorldConfig{
			ID:             getEnvOrDefault("WORLD_ID", "main"),
			StartYear:      getEnvAsIntOrDefault("WORLD_START_YEAR", 1300),
			StartSeason:    getEnvAsIntOrDefault("WORLD_START_SEASON", 0),
			Seed:           int64(getEnvAsIntOrDefault("WORLD_SEED", 0)),
			SaveEachSeason: getEnvOrDefault("WORLD_SAVE_EACH_SEASON", "true") == "true",
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	interval := getEnvOrDefault("WORLD_SEASON_INTERVAL", "6h")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("invalid WORLD_SEASON_INTERVAL %q: %w", interval, err)
	}
	cfg.World.SeasonInterval = d

	if cfg.World.StartSeason < 0 || cfg.World.StartSeason > 3 {
		return nil, fmt.Errorf("WORLD_START_SEASON must be 0..3, got %d", cfg.World.StartSeason)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
