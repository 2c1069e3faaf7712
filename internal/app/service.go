// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/nestegg/internal/adapters/repository"
	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
	"github.com/okian/nestegg/pkg/logger"
	"github.com/okian/nestegg/pkg/metrics"
)

// Service owns the single calculator workspace: the form collector and the
// latest projection outcome.
type Service struct {
	mu sync.Mutex

	// Core components
	collector *collector.Collector
	engine    *projection.Engine
	store     repository.Store

	// Configuration
	defaults    model.InputRecord
	ceiling     float64
	compounding projection.Compounding
	now         func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the default form profile.
func WithDefaults(rec model.InputRecord) Option {
	return func(s *Service) {
		s.defaults = rec
	}
}

// WithContributionCeiling sets the yearly contribution cap.
func WithContributionCeiling(ceiling float64) Option {
	return func(s *Service) {
		if ceiling > 0 {
			s.ceiling = ceiling
		}
	}
}

// WithCompounding selects the principal growth mode.
func WithCompounding(mode projection.Compounding) Option {
	return func(s *Service) {
		if mode.Valid() {
			s.compounding = mode
		}
	}
}

// WithClock sets the time source used for year labels and store stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStore sets the latest-outcome store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaults:    collector.DefaultProfile(),
		ceiling:     collector.DefaultContributionCeiling,
		compounding: projection.CompoundingCompat,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the workspace components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.collector = collector.New(
		collector.WithDefaults(s.defaults),
		collector.WithContributionCeiling(s.ceiling),
	)
	s.collector.OnSubmit(s.observeSubmit)
	s.engine = projection.NewEngine(
		projection.WithClock(s.now),
		projection.WithCompounding(s.compounding),
	)
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithClock(s.now))
	}

	s.started = true
	s.logger.Info(ctx, "projection service started",
		logger.String("compounding", string(s.compounding)),
		logger.Float64("contributionCeiling", s.ceiling),
	)
	return nil
}

// Stop drops the workspace state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.store.Clear(ctx)
	s.started = false
	s.logger.Info(ctx, "projection service stopped")
}

// observeSubmit is registered with the collector and sees every emitted record.
func (s *Service) observeSubmit(rec model.InputRecord) {
	metrics.RecordFormSubmission()
	s.logger.Debug(context.Background(), "form submitted",
		logger.Int("age", rec.Age),
		logger.Int("retirementAge", rec.RetirementAge),
	)
}

// FormValues returns the current form values.
func (s *Service) FormValues(_ context.Context) (model.InputRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.InputRecord{}, ErrNotStarted
	}
	return s.collector.Values(), nil
}

// SetField updates one form field from a number and returns the new values.
func (s *Service) SetField(ctx context.Context, field collector.Field, value float64) (model.InputRecord, bool, error) {
	return s.updateField(ctx, field, func(c *collector.Collector) (bool, error) {
		return c.Set(field, value)
	})
}

// SetFieldString updates one form field from its text form.
func (s *Service) SetFieldString(ctx context.Context, field collector.Field, raw string) (model.InputRecord, bool, error) {
	return s.updateField(ctx, field, func(c *collector.Collector) (bool, error) {
		return c.SetString(field, raw)
	})
}

func (s *Service) updateField(ctx context.Context, field collector.Field, apply func(*collector.Collector) (bool, error)) (model.InputRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.InputRecord{}, false, ErrNotStarted
	}

	clamped, err := apply(s.collector)
	if err != nil {
		reason := "invalid_value"
		if errors.Is(err, collector.ErrUnknownField) {
			reason = "unknown_field"
		}
		metrics.RecordFormError(reason)
		s.logger.Debug(ctx, "form field rejected", logger.String("field", string(field)), logger.Error(err))
		return s.collector.Values(), false, err
	}

	metrics.RecordFieldUpdate(string(field), clamped)
	values := s.collector.Values()
	if clamped {
		s.logger.Info(ctx, "contribution clamped to yearly ceiling",
			logger.Float64("contribution", values.Contribution),
			logger.Float64("salary", values.Salary),
		)
	}
	return values, clamped, nil
}

// ResetForm restores the default profile.
func (s *Service) ResetForm(_ context.Context) (model.InputRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.InputRecord{}, ErrNotStarted
	}
	s.collector.Reset()
	return s.collector.Values(), nil
}

// Submit emits the current form values, projects them and stores the outcome,
// replacing the previous one.
func (s *Service) Submit(ctx context.Context) (model.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.Outcome{}, ErrNotStarted
	}

	rec := s.collector.Submit()
	outcome := s.evaluate(ctx, rec)
	if _, err := s.store.Save(ctx, outcome); err != nil {
		return model.Outcome{}, fmt.Errorf("store projection: %w", err)
	}
	return outcome, nil
}

// Project computes a projection without touching the workspace.
func (s *Service) Project(ctx context.Context, in model.InputRecord) (model.Result, error) {
	s.mu.Lock()
	engine := s.engine
	started := s.started
	s.mu.Unlock()

	if !started {
		return model.Result{}, ErrNotStarted
	}
	return s.project(ctx, engine, in)
}

// Latest returns the most recently stored outcome.
func (s *Service) Latest(ctx context.Context) (repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return repository.Record{}, ErrNotStarted
	}
	return s.store.Latest(ctx)
}

// evaluate turns a record into an outcome; validation failures become messages.
func (s *Service) evaluate(ctx context.Context, rec model.InputRecord) model.Outcome {
	res, err := s.project(ctx, s.engine, rec)
	if err != nil {
		return model.Outcome{Error: err.Error()}
	}
	return model.Outcome{Result: &res}
}

func (s *Service) project(ctx context.Context, engine *projection.Engine, in model.InputRecord) (model.Result, error) {
	start := time.Now()
	res, err := engine.Project(in)
	if err != nil {
		metrics.RecordValidationError()
		s.logger.Debug(ctx, "projection rejected",
			logger.Int("age", in.Age),
			logger.Int("retirementAge", in.RetirementAge),
			logger.Error(err),
		)
		return model.Result{}, err
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordProjection(res.Horizon, res.FinalTotal, durationMs)
	s.logger.Debug(ctx, "projection computed",
		logger.Int("horizon", res.Horizon),
		logger.Int64("finalTotal", res.FinalTotal),
	)
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":             s.started,
		"compounding":         string(s.compounding),
		"contributionCeiling": s.ceiling,
	}

	if s.started {
		stats["form"] = s.collector.Values()
		if rec, err := s.store.Latest(context.Background()); err == nil {
			stats["revision"] = rec.Revision
			stats["storedAt"] = rec.StoredAt
			stats["lastFailed"] = rec.Outcome.Failed()
			if rec.Outcome.Result != nil {
				stats["horizon"] = rec.Outcome.Result.Horizon
				stats["finalTotal"] = rec.Outcome.Result.FinalTotal
			}
		}
	}

	return stats
}
