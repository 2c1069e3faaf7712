// Package collector holds the calculator form state and emits Input Records.
package collector

import "github.com/okian/nestegg/internal/domain/model"

// DefaultContributionCeiling is the yearly employee contribution cap in currency units.
const DefaultContributionCeiling = 19500

// DefaultProfile is the example profile shown before the user edits anything.
func DefaultProfile() model.InputRecord {
	return model.InputRecord{
		Age:           30,
		Balance:       1000,
		Salary:        50000,
		Contribution:  10,
		Match:         3,
		ROI:           7,
		RetirementAge: 65,
	}
}

// Option applies a configuration option to the Collector.
type Option func(*Collector)

// WithDefaults replaces the initial profile.
func WithDefaults(rec model.InputRecord) Option {
	return func(c *Collector) {
		c.defaults = rec
	}
}

// WithContributionCeiling sets the yearly contribution cap. Non-positive values are ignored.
func WithContributionCeiling(ceiling float64) Option {
	return func(c *Collector) {
		if ceiling > 0 {
			c.ceiling = ceiling
		}
	}
}
