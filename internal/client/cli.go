package client

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/okian/nestegg/internal/display"
	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
)

// Config holds the projector tool settings.
type Config struct {
	Input       model.InputRecord
	BaseURL     string // empty means compute locally
	Compounding projection.Compounding
	Width       int
	JSON        bool
	Timeout     time.Duration
	Verbose     bool
}

// ParseFlags reads the projector flags from args. Input flags default to the
// default profile.
func ParseFlags(name string, args []string, output io.Writer) (*Config, error) {
	def := collector.DefaultProfile()
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Input.Age, "age", def.Age, "Current age in years")
	fs.Float64Var(&cfg.Input.Balance, "balance", def.Balance, "Current account balance")
	fs.Float64Var(&cfg.Input.Salary, "salary", def.Salary, "Annual salary")
	fs.Float64Var(&cfg.Input.Contribution, "contribution", def.Contribution, "Employee contribution, percent of salary")
	fs.Float64Var(&cfg.Input.Match, "match", def.Match, "Employer match, percent of salary")
	fs.Float64Var(&cfg.Input.ROI, "roi", def.ROI, "Annual rate of return, percent")
	fs.IntVar(&cfg.Input.RetirementAge, "retirement-age", def.RetirementAge, "Target retirement age in years")
	fs.StringVar(&cfg.BaseURL, "url", "", "Base URL of a running server; empty computes locally")
	standard := fs.Bool("standard", false, "Use standard compounding of the starting balance")
	fs.IntVar(&cfg.Width, "width", display.DefaultWidth, "Chart width in characters")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the raw result as JSON")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "HTTP request timeout")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidFlags, fs.Args())
	}
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive", ErrInvalidFlags)
	}

	cfg.Compounding = projection.CompoundingCompat
	if *standard {
		cfg.Compounding = projection.CompoundingStandard
	}
	return cfg, nil
}
