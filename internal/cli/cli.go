package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/rigcompose/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rigcompose", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
rigcompose - Composes a robot runtime description from hardware fragments.

Usage:
  rigcompose [options] [DESCRIPTION_PATH]

Arguments:
  DESCRIPTION_PATH
    Path to a robot description .hcl file.

Options:
`)
		flagSet.PrintDefaults()
	}

	descriptionFlag := flagSet.String("description", "", "Path to the robot description file.")
	dFlag := flagSet.String("d", "", "Path to the robot description file (shorthand).")
	fragmentsPathFlag := flagSet.String("fragments-path", "fragments", "Path to the directory containing fragment definitions.")
	manifestsPathFlag := flagSet.String("manifests-path", "manifests", "Path to the directory containing manifest variants.")
	variantFlag := flagSet.String("variant", "", "Manifest variant to resolve. Empty skips manifest resolution.")
	fakeFlag := flagSet.String("use-fake-controllers", "", "Composition flag override. Options: 'true' or 'false'. Empty uses the document default.")
	outputFlag := flagSet.String("output", "", "Path to write the expanded description. Empty writes to stdout.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	dashboardFlag := flagSet.String("dashboard-url", "", "Dashboard endpoint to publish composition events to. Empty disables publishing.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	configFlag := flagSet.String("config", "", "Path to a YAML config file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *descriptionFlag != "" {
		path = *descriptionFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Description path determined.", "path", path)

	// Start from file + environment configuration, then let explicitly set
	// flags win.
	config, err := app.LoadConfig(*configFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("failed to load config file: %v", err)}
	}

	if path != "" {
		config.DescriptionPath = path
	}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fragments-path":
			config.FragmentsPath = *fragmentsPathFlag
		case "manifests-path":
			config.ManifestsPath = *manifestsPathFlag
		case "variant":
			config.Variant = *variantFlag
		case "output":
			config.OutputPath = *outputFlag
		case "healthcheck-port":
			config.HealthcheckPort = *healthPortFlag
		case "dashboard-url":
			config.DashboardURL = *dashboardFlag
		case "log-format":
			config.LogFormat = *logFormatFlag
		case "log-level":
			config.LogLevel = *logLevelFlag
		}
	})

	if config.DescriptionPath == "" {
		slog.Debug("No description path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	switch strings.ToLower(*fakeFlag) {
	case "":
		// document default applies
	case "true":
		v := true
		config.UseFakeControllers = &v
	case "false":
		v := false
		config.UseFakeControllers = &v
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid use-fake-controllers: must be 'true' or 'false'"}
	}

	config.LogFormat = strings.ToLower(config.LogFormat)
	if config.LogFormat != "text" && config.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	validated, err := app.NewConfig(*config)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}
