package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/games/blackjack"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
)

type CLI struct {
	Player   string  `short:"p" help:"Player name used for round history" default:"player"`
	Decks    *int    `short:"d" help:"Decks in the shoe (overrides BLACKJACK_DECKS)"`
	Seed     *int64  `help:"Random seed for reproducible shoes (overrides BLACKJACK_SEED)"`
	Storage  *string `help:"Round history backend: memory or sqlite (overrides STORAGE_TYPE)"`
	LogLevel *string `help:"Log level: debug, info, warn or error (overrides LOG_LEVEL)"`
	NoColor  bool    `help:"Print cards without colour"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Play single-player blackjack rounds at the terminal."),
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		kctx.Exit(1)
	}
	cli.apply(cfg)

	logger := logging.NewWithWriter(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	rounds, err := openRounds(cfg, logger)
	if err != nil {
		logger.Error("failed to open round history", "storage", cfg.StorageType, "err", err)
		kctx.Exit(1)
	}
	defer rounds.Close()

	manager := blackjack.NewManager(rounds, blackjack.SettingsFromConfig(cfg), logger)
	session, err := manager.Session(cli.Player)
	if err != nil {
		logger.LogError(err)
		kctx.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting table", "player", cli.Player, "decks", cfg.NumberOfDecks, "storage", cfg.StorageType)

	repl := newREPL(session, os.Stdout, newRenderer(!cli.NoColor))
	if err := repl.Run(ctx, os.Stdin); err != nil {
		logger.Error("session ended with error", "err", err)
		kctx.Exit(1)
	}
}

// apply lets flags win over the environment
func (c *CLI) apply(cfg *config.Config) {
	if c.Decks != nil {
		cfg.NumberOfDecks = *c.Decks
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if c.Storage != nil {
		cfg.StorageType = *c.Storage
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}
}

func openRounds(cfg *config.Config, logger *logging.Logger) (round.Repository, error) {
	switch cfg.StorageType {
	case config.StorageSQLite:
		return round.NewSQLiteRepository(cfg.DatabasePath(), logger)
	case config.StorageMemory:
		return round.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
