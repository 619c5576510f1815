// Package store owns the canonical skill collection. The collection is kept
// ascending by start date (stable) and is mirrored to a durable blob after
// every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("skill not found")
	ErrNotLoaded = errors.New("store not loaded")
	ErrClosed    = errors.New("store closed")
	ErrDegraded  = errors.New("stored skills unreadable")
)

// Listener receives a snapshot of the collection after it changes.
type Listener func(skills []skill.Skill)

type Options struct {
	Key          string
	Logger       *slog.Logger
	Now          func() time.Time
	NewID        func() string
	WriteTimeout time.Duration
}

type Store struct {
	key    string
	blobs  storage.BlobStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu     sync.RWMutex
	skills []skill.Skill
	loaded  bool
	closed  bool
	loadErr error

	loadOnce sync.Once
	ready    chan struct{}

	// seq numbers committed states under mu; notified is the newest seq
	// handed to listeners, under notifyMu.
	seq      uint64
	notifyMu sync.Mutex
	notified uint64

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int

	writer *writer
}

// New constructs a store and starts its background writer. Call Load before
// mutating and Close when done.
func New(blobs storage.BlobStore, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = storage.DefaultKey
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	log := logger.OrDiscard(opts.Logger).With("component", "store", "key", opts.Key)
	s := &Store{
		key:    opts.Key,
		blobs:  blobs,
		logger: log,
		now:    opts.Now,
		newID:  opts.NewID,
		skills: []skill.Skill{},
		ready:  make(chan struct{}),
		subs:   map[int]Listener{},
	}
	s.writer = newWriter(blobs, opts.Key, opts.WriteTimeout, log)
	go s.writer.run()
	return s
}

// Load reads the durable blob once. A missing slot, a read failure or an
// undecodable blob all leave the store empty; failures are only logged.
// Ready is closed when Load finishes, whatever the outcome.
func (s *Store) Load(ctx context.Context) {
	s.loadOnce.Do(func() {
		skills, err := s.read(ctx)

		s.mu.Lock()
		s.skills = skills
		s.loaded = true
		s.loadErr = err
		s.seq++
		seq := s.seq
		snap := s.snapshotLocked()
		s.mu.Unlock()

		close(s.ready)
		s.logger.Info("store ready", "skills", len(skills))
		s.notify(snap, seq)
	})
}

// read returns the stored collection, or an empty one together with the
// reason when the slot could not be read or decoded. A missing slot is not
// an error.
func (s *Store) read(ctx context.Context) ([]skill.Skill, error) {
	if s.blobs == nil {
		return []skill.Skill{}, nil
	}
	b, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []skill.Skill{}, nil
		}
		s.logger.Error("failed to load skills from storage", "error", err)
		return []skill.Skill{}, fmt.Errorf("%w: %v", ErrDegraded, err)
	}
	skills, err := Decode(b)
	if err != nil {
		s.logger.Error("failed to load skills from storage", "error", err)
		return []skill.Skill{}, fmt.Errorf("%w: %v", ErrDegraded, err)
	}
	return skills, nil
}

// LoadErr reports why Load fell back to an empty collection. It is nil
// before Load, after a clean load, and when the slot was simply empty.
// Writers that would overwrite the slot wholesale should check it.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Ready is closed once the initial load has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Skills returns a copy of the collection in canonical order.
func (s *Store) Skills() []skill.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Get(id string) (skill.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return skill.Skill{}, ErrNotLoaded
	}
	if i := s.indexLocked(id); i >= 0 {
		return s.skills[i].Clone(), nil
	}
	return skill.Skill{}, ErrNotFound
}

// Add validates d, assigns a fresh id and inserts the new skill.
func (s *Store) Add(d skill.Draft) (skill.Skill, error) {
	d = d.Normalize()
	d.Name = strings.Clone(d.Name)
	if err := d.Validate(s.now()); err != nil {
		return skill.Skill{}, err
	}

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return skill.Skill{}, err
	}
	id := s.newID()
	for s.indexLocked(id) >= 0 {
		id = s.newID()
	}
	created := d.Skill(id)
	s.skills = append(s.skills, created)
	sortByStart(s.skills)
	snap, seq := s.commitLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return created.Clone(), nil
}

// Update replaces the skill carrying sk.ID. It returns ErrNotFound, leaving
// the collection untouched, when no such skill exists.
func (s *Store) Update(sk skill.Skill) (skill.Skill, error) {
	sk = sk.Normalize()
	sk.ID = strings.Clone(sk.ID)
	sk.Name = strings.Clone(sk.Name)
	if err := sk.Validate(s.now()); err != nil {
		return skill.Skill{}, err
	}

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return skill.Skill{}, err
	}
	i := s.indexLocked(sk.ID)
	if i < 0 {
		s.mu.Unlock()
		return skill.Skill{}, ErrNotFound
	}
	s.skills[i] = sk
	sortByStart(s.skills)
	snap, seq := s.commitLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return sk.Clone(), nil
}

// Remove deletes the skill with id. Removing an unknown id is not an error
// and reports false.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	i := s.indexLocked(id)
	if i >= 0 {
		s.skills = append(s.skills[:i], s.skills[i+1:]...)
	}
	snap, seq := s.commitLocked()
	s.mu.Unlock()

	if i >= 0 {
		s.notify(snap, seq)
	}
	return i >= 0, nil
}

// Subscribe registers fn for change notifications and returns a func that
// removes it. fn runs on the mutating goroutine after the store lock is
// released. Deliveries are serialized and never go backwards: a snapshot
// older than one already delivered is skipped. fn must not mutate the store.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Flush blocks until every snapshot queued so far has been written or ctx
// is done.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close flushes pending writes and stops the writer.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.writer.stop(ctx)
}

func (s *Store) writableLocked() error {
	if s.closed {
		return ErrClosed
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *Store) commitLocked() ([]skill.Skill, uint64) {
	s.seq++
	snap := s.snapshotLocked()
	s.writer.enqueue(snap)
	return snap, s.seq
}

func (s *Store) indexLocked(id string) int {
	for i := range s.skills {
		if s.skills[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []skill.Skill {
	out := make([]skill.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk.Clone())
	}
	return out
}

func (s *Store) notify(snap []skill.Skill, seq uint64) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.notified {
		return
	}
	s.notified = seq

	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		cp := make([]skill.Skill, 0, len(snap))
		for _, sk := range snap {
			cp = append(cp, sk.Clone())
		}
		fn(cp)
	}
}
