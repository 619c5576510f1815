package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-tracker/internal/app"
	"skill-tracker/internal/config"
	"skill-tracker/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	log := logger.New(os.Stderr, os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log = logger.New(os.Stderr, cfg.App.LogLevel).With("app", cfg.App.AppName, "env", cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Error("failed to bootstrap app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Error("cleanup error", "error", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Error("invalid HTTP port", "error", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bootstrap.Hub.Run(gctx)
	})

	g.Go(func() error {
		bootstrap.Container.Store.Load(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info("http listening", "addr", addr)
		return bootstrap.Fiber.Listen(addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return bootstrap.Fiber.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
	}
	log.Info("server stopped")
}
