package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/internal/config"
	"github.com/ethpandaops/fastplong-multireport/internal/core"
)

// Handler manages CLI operations and command routing
type Handler struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewHandler creates a new CLI handler operating on fs
func NewHandler(fs afero.Fs, logger logrus.FieldLogger) *Handler {
	return &Handler{
		fs:     fs,
		logger: logger.WithField("component", "cli_handler"),
	}
}

// Run validates the configuration and aggregates the reports. SIGINT and
// SIGTERM cancel the run.
func (h *Handler) Run(ctx context.Context, cfg *config.DefaultConfig) (*core.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	ctx, cancel := h.setupGracefulShutdown(ctx)
	defer cancel()

	h.logger.WithFields(logrus.Fields{
		"dir":        cfg.GetResultsDir(),
		"output":     cfg.GetOutputPath(),
		"recursive":  cfg.IsRecursive(),
		"max_points": cfg.GetMaxCurvePoints(),
		"workers":    cfg.GetWorkers(),
	}).Debug("Configuration loaded")

	tool, err := core.NewTool(cfg.Clone(), h.fs, h.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}

	result, err := tool.Run(ctx)
	if err != nil {
		return result, err
	}

	for _, path := range result.Exports {
		h.logger.WithField("path", path).Info("Export written")
	}

	return result, nil
}

// setupGracefulShutdown configures signal handling for graceful shutdown
func (h *Handler) setupGracefulShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			h.logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
