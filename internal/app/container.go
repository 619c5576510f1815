package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skill-tracker/internal/ai"
	"skill-tracker/internal/config"
	"skill-tracker/internal/database"
	"skill-tracker/internal/database/migration"
	dbpostgres "skill-tracker/internal/database/postgres"
	"skill-tracker/internal/infrastructure/cache"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/repository"
	"skill-tracker/internal/storage"
	"skill-tracker/internal/store"
	"skill-tracker/migrations"
)

// Container owns the long-lived dependencies shared by the server and the
// seed command.
type Container struct {
	Config config.Config
	Logger *slog.Logger

	Blobs storage.BlobStore
	Store *store.Store
	AI    ai.Client
	Cache *cache.Redis
	DB    database.DB

	// pinger is the connection backing Blobs, nil for memory and file.
	pinger interface{ Ping(context.Context) error }
}

func NewContainer(ctx context.Context, cfg config.Config, log *slog.Logger) (*Container, error) {
	log = logger.OrDiscard(log)
	c := &Container{Config: cfg, Logger: log}

	if err := c.openStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.AI.CacheTTL > 0 {
		if r, ok := c.Blobs.(*cache.Redis); ok {
			c.Cache = r
		} else {
			c.Cache = cache.NewRedis(cfg.Redis, log)
		}
	}

	gemini := ai.NewGemini(
		ai.WithAPIKey(cfg.AI.APIKey),
		ai.WithModel(cfg.AI.Model),
		ai.WithTimeout(cfg.AI.Timeout),
	)
	c.AI = gemini
	if cfg.AI.APIKey == "" {
		log.Warn("ai api key not set, suggestions will fail", "model", gemini.Model())
	} else {
		log.Info("ai client configured", "model", gemini.Model())
	}

	c.Store = store.New(c.Blobs, store.Options{
		Key:          cfg.Storage.Key,
		Logger:       log,
		WriteTimeout: cfg.Storage.WriteTTL,
	})

	return c, nil
}

func (c *Container) openStorage(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Storage.Backend {
	case storage.BackendMemory:
		c.Blobs = storage.NewMemory()

	case storage.BackendFile:
		f, err := storage.NewFile(cfg.Storage.FileDir)
		if err != nil {
			return fmt.Errorf("open file storage: %w", err)
		}
		c.Blobs = f

	case storage.BackendRedis:
		r := cache.NewRedis(cfg.Redis, c.Logger)
		c.Blobs = r
		c.pinger = r

	case storage.BackendPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		c.DB = db

		migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		applied, err := migration.Runner{FS: migrations.FS, Logger: c.Logger}.Run(migCtx, db.SQLDB())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Logger.Debug("migrations up to date", "applied", applied)
		c.Blobs = repository.NewPostgresBlobRepository(db)
		c.pinger = db

	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	c.Logger.Info("storage ready", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)
	return nil
}

// Close flushes the store and releases connections. Safe on a partially
// built container.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		keep(c.Store.Close(ctx))
		cancel()
	}
	if c.Cache != nil {
		keep(c.Cache.Close())
	}
	if r, ok := c.Blobs.(*cache.Redis); ok && r != c.Cache {
		keep(r.Close())
	}
	if c.DB != nil {
		keep(c.DB.Close())
	}
	return firstErr
}
