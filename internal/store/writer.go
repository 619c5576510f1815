package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/storage"
)

// writer persists snapshots on its own goroutine. Only the newest queued
// snapshot is written; older ones are superseded.
type writer struct {
	blobs   storage.BlobStore
	key     string
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	pending []skill.Skill
	queued  uint64
	written uint64
	done    chan struct{}

	wake     chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
	stopped  chan struct{}
}

func newWriter(blobs storage.BlobStore, key string, timeout time.Duration, logger *slog.Logger) *writer {
	return &writer{
		blobs:   blobs,
		key:     key,
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (w *writer) enqueue(snap []skill.Skill) {
	w.mu.Lock()
	w.pending = snap
	w.queued++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if w.written == w.queued {
			w.mu.Unlock()
			return
		}
		snap, seq := w.pending, w.queued
		w.pending = nil
		w.mu.Unlock()

		w.write(snap)

		w.mu.Lock()
		w.written = seq
		close(w.done)
		w.done = make(chan struct{})
		w.mu.Unlock()
	}
}

func (w *writer) write(snap []skill.Skill) {
	if w.blobs == nil {
		return
	}
	b, err := Encode(snap)
	if err != nil {
		w.logger.Error("failed to save skills to storage", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.blobs.Set(ctx, w.key, b); err != nil {
		w.logger.Error("failed to save skills to storage", "error", err, "skills", len(snap))
		return
	}
	w.logger.Debug("skills saved", "skills", len(snap), "bytes", len(b))
}

func (w *writer) flush(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.written == w.queued {
			w.mu.Unlock()
			return nil
		}
		done := w.done
		w.mu.Unlock()

		select {
		case <-done:
		case <-w.stopped:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *writer) stop(ctx context.Context) error {
	w.quitOnce.Do(func() { close(w.quit) })
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
