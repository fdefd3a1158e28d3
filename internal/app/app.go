package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/manifest"
	"github.com/vk/rigcompose/internal/model"
	"github.com/vk/rigcompose/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Construction loads everything up front so a bad fragment
// library, manifest, or description fails before any composition runs.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	fragments *registry.Registry
	manifests *manifest.Registry
	document  *model.Document
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and loaded
// registries. Critical load failures panic; the entrypoint recovers them
// into a clean exit.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	fragments := registry.New()
	if err := fragments.LoadFragmentsRecursively(ctx, cfg.FragmentsPath); err != nil {
		panic(fmt.Errorf("failed to load fragment library: %w", err))
	}

	manifests, err := manifest.LoadDir(ctx, cfg.ManifestsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}

	document, err := model.LoadDocument(ctx, cfg.DescriptionPath)
	if err != nil {
		panic(fmt.Errorf("failed to load robot description: %w", err))
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		fragments: fragments,
		manifests: manifests,
		document:  document,
	}
}

// Fragments returns the application's fragment registry. Primarily for testing.
func (a *App) Fragments() *registry.Registry {
	return a.fragments
}

// Manifests returns the application's manifest registry. Primarily for testing.
func (a *App) Manifests() *manifest.Registry {
	return a.manifests
}

// Document returns the loaded robot description. Primarily for testing.
func (a *App) Document() *model.Document {
	return a.document
}
