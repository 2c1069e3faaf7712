// Command projector prints a retirement projection as a text chart, computed
// locally or by a running server.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/nestegg/internal/client"
	"github.com/okian/nestegg/internal/domain/projection"
	"github.com/okian/nestegg/pkg/logger"
)

func main() {
	cfg, err := client.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Run(ctx, cfg, os.Stdout); err != nil {
		if !projection.IsValidationError(err) {
			logger.Get().Error(ctx, "projection failed", logger.Error(err))
		}
		stop()
		os.Exit(1)
	}
}
