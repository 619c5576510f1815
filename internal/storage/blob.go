// Package storage defines the durable single-slot blob contract the skill
// store persists through, plus the in-process backends. Networked backends
// live in internal/infrastructure/cache (Redis) and internal/repository
// (PostgreSQL).
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("blob not found")
	ErrUnavailable = errors.New("storage unavailable")
)

// BlobStore holds opaque values under named keys.
type BlobStore interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const DefaultKey = "skill-tracker-data"
