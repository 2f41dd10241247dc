package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/specialistvlad/cgpgrid/internal/config"
	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
	"github.com/specialistvlad/cgpgrid/internal/interpreter"
	"github.com/specialistvlad/cgpgrid/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	runID      string
	interp     *interpreter.Interpreter
	recorder   *metrics.Recorder
	httpServer *http.Server
}

// NewApp builds an App with its own logger, loads the run configuration
// through loader and validates it.
func NewApp(ctx context.Context, outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	runID := uuid.NewString()
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, runID, outW)
	if err != nil {
		return nil, err
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	model.ApplyDefaults()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	interp := interpreter.New()
	recorder := metrics.New(func() float64 { return float64(interp.EvaluatedSolutions()) })

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		runID:    runID,
		interp:   interp,
		recorder: recorder,
	}, nil
}

// Model returns the loaded run configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// RunID identifies this run in logs.
func (a *App) RunID() string {
	return a.runID
}
