package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/hcl_adapter"
	"github.com/vk/reactsynth/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	problems   []*config.Problem
	metrics    *metrics.Recorder
	httpServer *http.Server
	colors     bool
}

// NewApp is the constructor for the main application. It loads every
// problem up front; a failure to load is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	problems, err := loader.Load(ctx, cfg.ProblemPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load problems: %w", err))
	}
	logger.Debug("Problems loaded.", "count", len(problems))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		problems: problems,
		metrics:  metrics.NewRecorder(),
		colors:   isTerminal(outW),
	}
}

// Problems returns the loaded problems. This is primarily for testing.
func (a *App) Problems() []*config.Problem {
	return a.problems
}

// Metrics returns the app's metric recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// DefaultLoader reads .ltl and .hcl problem files.
func DefaultLoader() config.Loader {
	return config.NewExtensionLoader(map[string]config.FileLoader{
		".ltl": config.NewTextLoader(),
		".hcl": hcl_adapter.NewLoader(),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
