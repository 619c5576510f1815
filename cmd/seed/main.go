package main

import (
	"context"
	"os"
	"time"

	"skill-tracker/internal/app"
	"skill-tracker/internal/config"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Stderr, "info").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(os.Stderr, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init container", "error", err)
		os.Exit(1)
	}

	c.Store.Load(ctx)
	if err := c.Store.LoadErr(); err != nil {
		log.Error("stored skills are unreadable, not seeding", "key", cfg.Storage.Key, "error", err)
		_ = c.Close()
		os.Exit(1)
	}
	runErr := seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, c.Store)

	// Close flushes the queued snapshot before connections go away.
	if err := c.Close(); err != nil {
		log.Error("close failed", "error", err)
		os.Exit(1)
	}
	if runErr != nil {
		log.Error("seed failed", "error", runErr)
		os.Exit(1)
	}
	log.Info("seed completed", "skills", len(c.Store.Skills()))
}
