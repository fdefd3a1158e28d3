package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/rigcompose/internal/composer"
	"github.com/vk/rigcompose/internal/ctxlog"
	"github.com/vk/rigcompose/internal/dashboard"
	"github.com/vk/rigcompose/internal/render"
)

// Run executes one composition pass based on the loaded configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	flag := a.document.ResolveFlag(a.config.UseFakeControllers)
	a.logger.Info("Composing robot description",
		"robot", a.document.Name,
		"flag_argument", a.document.FlagName(),
		"use_fake_controllers", flag,
	)

	result, err := composer.Compose(ctx, a.document, a.fragments, flag)
	if err != nil {
		return fmt.Errorf("composition failed: %w", err)
	}

	expanded := render.Document(result)
	if err := a.writeOutput(expanded); err != nil {
		return err
	}
	a.logger.Info("Robot description composed.",
		"pass_id", result.PassID,
		"inclusions", 1+len(result.Directives),
	)

	if a.config.Variant != "" {
		m, err := a.manifests.Variant(a.config.Variant)
		if err != nil {
			return err
		}
		a.logger.Info("Manifest variant resolved.",
			"variant", m.Variant(),
			"dependencies", m.Len(),
		)
	}

	if a.config.DashboardURL != "" {
		pub := dashboard.NewPublisher(a.config.DashboardURL)
		if err := pub.Publish(ctx, result); err != nil {
			a.logger.Error("Dashboard publish failed", "error", err)
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeOutput writes the expanded description to the configured output path,
// or the app's output writer when none is set.
func (a *App) writeOutput(expanded []byte) error {
	if a.config.OutputPath == "" {
		_, err := a.outW.Write(expanded)
		return err
	}
	if err := os.WriteFile(a.config.OutputPath, expanded, 0644); err != nil {
		return fmt.Errorf("failed to write expanded description: %w", err)
	}
	a.logger.Debug("Expanded description written.", "path", a.config.OutputPath)
	return nil
}
