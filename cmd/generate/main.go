package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"example.com/engagement-analytics/internal/config"
	"example.com/engagement-analytics/internal/gen"
	spg "example.com/engagement-analytics/internal/storage/postgres"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	cfg, err := config.Parse()
	if err != nil {
		return exitConfig, err
	}
	genCfg, err := cfg.Generation()
	if err != nil {
		return exitConfig, err
	}

	log := newLogger(cfg.LogLevel)
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()
	log.Info().
		Int64("seed", genCfg.Seed).
		Int("authors", genCfg.Authors).
		Int("posts", genCfg.Posts).
		Int("users", genCfg.Users).
		Int("engagement_cap", genCfg.MaxEngagements).
		Msg("generation run starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := spg.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return exitRuntime, fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	mig := filepath.Join("migrations", "0001_init.sql")
	if err := db.RunMigration(ctx, mig); err != nil {
		return exitRuntime, fmt.Errorf("migration: %w", err)
	}
	log.Info().Str("file", mig).Msg("migration applied")

	ds, err := gen.New(genCfg, log).Run(ctx)
	if err != nil {
		return exitRuntime, fmt.Errorf("generate: %w", err)
	}

	loader := spg.NewLoader(db, cfg.BatchSize, log)
	if err := loader.LoadDataset(ctx, ds); err != nil {
		// Batch failures are fatal; earlier batches stay committed.
		return exitRuntime, fmt.Errorf("load: %w", err)
	}

	log.Info().
		Int("authors", len(ds.Authors)).
		Int("posts", len(ds.Posts)).
		Int("users", len(ds.Users)).
		Int("engagements", len(ds.Engagements)).
		Msg("generation run complete")
	return exitOK, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
