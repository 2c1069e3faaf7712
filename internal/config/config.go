// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New() returns a Config with defaults.
//   - Load(ctx) layers defaults, an optional YAML file and env vars.
//   - Errors are wrapped with this package's sentinels.
package config

import (
	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// ContributionCeiling caps the yearly employee contribution amount.
	ContributionCeiling float64 `koanf:"contribution_ceiling"`
	// Compounding selects principal growth: compat or standard.
	Compounding string `koanf:"compounding"`

	// Default form profile.
	DefaultAge           int     `koanf:"default_age"`
	DefaultBalance       float64 `koanf:"default_balance"`
	DefaultSalary        float64 `koanf:"default_salary"`
	DefaultContribution  float64 `koanf:"default_contribution"`
	DefaultMatch         float64 `koanf:"default_match"`
	DefaultROI           float64 `koanf:"default_roi"`
	DefaultRetirementAge int     `koanf:"default_retirement_age"`
}

// New creates a Config populated with defaults.
func New() *Config {
	profile := collector.DefaultProfile()
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		ContributionCeiling:  collector.DefaultContributionCeiling,
		Compounding:          string(projection.CompoundingCompat),
		DefaultAge:           profile.Age,
		DefaultBalance:       profile.Balance,
		DefaultSalary:        profile.Salary,
		DefaultContribution:  profile.Contribution,
		DefaultMatch:         profile.Match,
		DefaultROI:           profile.ROI,
		DefaultRetirementAge: profile.RetirementAge,
	}
}

// Profile returns the configured default form values.
func (c *Config) Profile() model.InputRecord {
	return model.InputRecord{
		Age:           c.DefaultAge,
		Balance:       c.DefaultBalance,
		Salary:        c.DefaultSalary,
		Contribution:  c.DefaultContribution,
		Match:         c.DefaultMatch,
		ROI:           c.DefaultROI,
		RetirementAge: c.DefaultRetirementAge,
	}
}
