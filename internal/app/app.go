package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/libforge/internal/ctxlog"
	"github.com/vk/libforge/internal/invoke"
	"github.com/vk/libforge/internal/manifest"
	"github.com/vk/libforge/internal/project"
	"github.com/vk/libforge/internal/registry"
	"github.com/vk/libforge/internal/resolve"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	project  *project.Project
	registry *registry.Registry
	resolver *resolve.Resolver
	invoker  invoke.Invoker
}

// Option customizes an App, primarily for tests.
type Option func(*App)

// WithInvoker replaces the process invoker, letting tests script
// compiler and test-executable behavior without a real toolchain.
func WithInvoker(inv invoke.Invoker) Option {
	return func(a *App) {
		a.invoker = inv
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a registry
// loaded from the workspace manifests.
func NewApp(outW io.Writer, config *Config, opts ...Option) (*App, error) {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	proj, reg, err := manifest.Load(ctx, config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	logger.Debug("Workspace loaded.", "library", proj.Name, "modules", reg.Len())

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		project:  proj,
		registry: reg,
		resolver: resolve.New(reg),
		invoker:  &invoke.ExecInvoker{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Project returns the loaded workspace configuration. Primarily for testing.
func (a *App) Project() *project.Project {
	return a.project
}
