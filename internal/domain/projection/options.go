// Package projection computes yearly retirement account snapshots.
package projection

import "time"

// Compounding selects how the starting balance grows.
type Compounding string

const (
	// CompoundingCompat grows the balance by (1 + r^n), matching the
	// historical calculator output.
	CompoundingCompat Compounding = "compat"
	// CompoundingStandard grows the balance by (1+r)^n.
	CompoundingStandard Compounding = "standard"
)

// Valid reports whether c names a known compounding mode.
func (c Compounding) Valid() bool {
	return c == CompoundingCompat || c == CompoundingStandard
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the source of the current calendar year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCompounding selects the principal growth mode. Unknown modes are ignored.
func WithCompounding(mode Compounding) Option {
	return func(e *Engine) {
		if mode.Valid() {
			e.compounding = mode
		}
	}
}
