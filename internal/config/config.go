package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends for round history
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Table configuration
	NumberOfDecks   int
	StartingBalance int64
	DefaultBet      int64
	Seed            int64 // 0 means seed from the clock

	// Round history
	StorageType string
	DataDir     string

	// Environment
	LogLevel    string
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		StorageType: getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		DataDir:     getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	decks, err := getIntWithDefault("BLACKJACK_DECKS", 1)
	if err != nil {
		return nil, err
	}
	cfg.NumberOfDecks = int(decks)

	if cfg.StartingBalance, err = getIntWithDefault("BLACKJACK_STARTING_BALANCE", 200); err != nil {
		return nil, err
	}
	if cfg.DefaultBet, err = getIntWithDefault("BLACKJACK_BET", 5); err != nil {
		return nil, err
	}
	if cfg.Seed, err = getIntWithDefault("BLACKJACK_SEED", 0); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the configuration values are usable
func (c *Config) validate() error {
	if c.NumberOfDecks < 1 {
		return fmt.Errorf("BLACKJACK_DECKS must be at least 1")
	}
	if c.DefaultBet < 1 {
		return fmt.Errorf("BLACKJACK_BET must be positive")
	}
	if c.StorageType != StorageMemory && c.StorageType != StorageSQLite {
		return fmt.Errorf("STORAGE_TYPE must be %q or %q", StorageMemory, StorageSQLite)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DatabasePath is where the SQLite round history lives
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "blackjack.db")
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
