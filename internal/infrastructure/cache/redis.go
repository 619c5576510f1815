package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"skill-tracker/internal/config"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Redis serves two roles: the durable skill blob slot (keys without TTL)
// and the suggestion cache (JSON values with TTL). When the server cannot be
// reached at start-up the client is dropped and every call bypasses Redis.
type Redis struct {
	client     *redis.Client
	logger     *slog.Logger
	defaultTTL time.Duration

	warnedUnavailable atomic.Bool
}

var _ storage.BlobStore = (*Redis)(nil)

func NewRedis(cfg config.RedisConfig, log *slog.Logger) *Redis {
	log = logger.OrDiscard(log).With("component", "redis")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing", "addr", cfg.Addr(), "error", err)
		_ = client.Close()
		return &Redis{client: nil, logger: log, defaultTTL: cfg.TTL}
	}

	return NewRedisWithClient(client, cfg.TTL, log)
}

func NewRedisWithClient(client *redis.Client, defaultTTL time.Duration, log *slog.Logger) *Redis {
	return &Redis{client: client, logger: logger.OrDiscard(log), defaultTTL: defaultTTL}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing", "error", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return storage.ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// Get reads a blob. An unreachable server is reported as
// storage.ErrUnavailable so callers can tell it from an empty slot.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r.isUnavailable() {
		return nil, storage.ErrUnavailable
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		r.warnUnavailableOnce(err)
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return b, nil
}

// Set writes a blob with no expiry.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if r.isUnavailable() {
		return storage.ErrUnavailable
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}
