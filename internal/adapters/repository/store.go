// Package repository holds the most recent projection outcome.
package repository

import (
	"context"
	"time"

	"github.com/okian/nestegg/internal/domain/model"
)

// Record is a stored outcome plus bookkeeping.
type Record struct {
	Outcome  model.Outcome
	StoredAt time.Time
	// Revision increases by one on every Save.
	Revision uint64
}

// Store provides access to the latest projection outcome. Each Save replaces
// the previous outcome wholesale; nothing is kept across process restarts.
type Store interface {
	// Save replaces the latest outcome and returns the stored record.
	Save(ctx context.Context, outcome model.Outcome) (Record, error)

	// Latest returns the most recent record.
	// Returns ErrNotFound before the first Save.
	Latest(ctx context.Context) (Record, error)

	// Clear forgets the latest outcome.
	Clear(ctx context.Context)
}
