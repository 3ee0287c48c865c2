package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"civic-reporter-go/internal/platform/errors"
)

// Loader reads configuration from an optional yaml file layered over the
// defaults, with environment overrides for credentials.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader for the given config file path. An empty path
// selects "config.yaml" in the working directory.
func NewLoader(path string) *Loader {
	if path == "" {
		path = "config.yaml"
	}
	return &Loader{
		path:      path,
		useDotEnv: true,
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Load builds the effective configuration. A missing config file is not an
// error; the defaults plus environment variables apply.
func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		// A missing .env file just means plain environment variables.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.KindConfig, "config.load", "parse config file", err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, errors.Wrap(errors.KindConfig, "config.load", "read config file", err)
	}

	if key := os.Getenv("GROQ_API_KEY"); key != "" && cfg.Scoring.APIKey == "" {
		cfg.Scoring.APIKey = key
	}

	return cfg, nil
}
