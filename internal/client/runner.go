package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/nestegg/internal/display"
	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
	"github.com/okian/nestegg/pkg/logger"
)

// Run projects cfg.Input, locally or against cfg.BaseURL, and renders the
// outcome to w. Validation failures are rendered and also returned so the
// caller can set the exit status.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	log := logger.Named("projector")

	var projector projection.Projector
	if cfg.BaseURL != "" {
		log.Debug(ctx, "projecting remotely", logger.String("url", cfg.BaseURL))
		projector = remote{ctx: ctx, c: NewHTTPClient(cfg.BaseURL, WithTimeout(cfg.Timeout))}
	} else {
		projector = projection.NewEngine(projection.WithCompounding(cfg.Compounding))
	}

	res, err := projector.Project(cfg.Input)
	if err != nil && !projection.IsValidationError(err) {
		return err
	}

	outcome := model.Outcome{Result: &res}
	if err != nil {
		outcome = model.Outcome{Error: err.Error()}
	}

	if cfg.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(outcome); encErr != nil {
			return fmt.Errorf("encode outcome: %w", encErr)
		}
	} else if renderErr := display.Text(w, outcome, cfg.Width); renderErr != nil {
		return fmt.Errorf("render outcome: %w", renderErr)
	}

	if err != nil {
		log.Debug(ctx, "projection rejected", logger.Error(err))
	}
	return err
}

// remote adapts HTTPClient to projection.Projector.
type remote struct {
	ctx context.Context //nolint:containedctx // scoped to one Run call
	c   *HTTPClient
}

func (r remote) Project(in model.InputRecord) (model.Result, error) {
	return r.c.Project(r.ctx, in)
}
