package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/nestegg/internal/domain/model"
)

// MemoryStore implements Store with a mutex-guarded value.
type MemoryStore struct {
	mu       sync.RWMutex
	record   Record
	has      bool
	revision uint64
	now      func() time.Time
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the time source for StoredAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save replaces the latest outcome.
func (s *MemoryStore) Save(_ context.Context, outcome model.Outcome) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	s.record = Record{
		Outcome:  cloneOutcome(outcome),
		StoredAt: s.now(),
		Revision: s.revision,
	}
	s.has = true
	return s.record, nil
}

// Latest returns the most recent record.
func (s *MemoryStore) Latest(_ context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has {
		return Record{}, ErrNotFound
	}
	rec := s.record
	rec.Outcome = cloneOutcome(rec.Outcome)
	return rec, nil
}

// Clear forgets the latest outcome. The revision counter keeps counting.
func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = Record{}
	s.has = false
}

// cloneOutcome copies the snapshot slice so callers cannot mutate stored state.
func cloneOutcome(o model.Outcome) model.Outcome {
	if o.Result == nil {
		return o
	}
	res := *o.Result
	res.Snapshots = append([]model.Snapshot(nil), o.Result.Snapshots...)
	o.Result = &res
	return o
}
