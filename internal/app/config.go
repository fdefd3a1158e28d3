package app

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all the necessary configuration for an App instance to run.
// Values layer as: built-in defaults, then an optional YAML config file, then
// RIGCOMPOSE_-prefixed environment variables, then explicit CLI flags.
type Config struct {
	DescriptionPath string `koanf:"description_path"`
	FragmentsPath   string `koanf:"fragments_path"`
	ManifestsPath   string `koanf:"manifests_path"`
	Variant         string `koanf:"variant"`
	OutputPath      string `koanf:"output_path"`

	LogFormat       string `koanf:"log_format"`
	LogLevel        string `koanf:"log_level"`
	HealthcheckPort int    `koanf:"healthcheck_port"`
	DashboardURL    string `koanf:"dashboard_url"`

	// UseFakeControllers is the composition flag override. Nil means the
	// document's declared default applies.
	UseFakeControllers *bool `koanf:"-"`
}

// LoadConfig builds a Config from defaults, an optional YAML file, and
// environment variables (RIGCOMPOSE_LOG_LEVEL -> log_level).
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("fragments_path", "fragments")
	k.Set("manifests_path", "manifests")
	k.Set("log_level", "info")
	k.Set("log_format", "json")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("RIGCOMPOSE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RIGCOMPOSE_"))
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewConfig validates a fully assembled Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptionPath == "" {
		return nil, errors.New("DescriptionPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
