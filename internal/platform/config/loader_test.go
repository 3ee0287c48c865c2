package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderMissingFileUsesDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).WithDotEnv(false)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ImageGate.MinWidth != 100 || cfg.ImageGate.MaxWidth != 4000 {
		t.Errorf("unexpected gate defaults: %+v", cfg.ImageGate)
	}
	if cfg.Scoring.ModelName != "openai/gpt-oss-20b" {
		t.Errorf("unexpected scoring model: %s", cfg.Scoring.ModelName)
	}
	if len(cfg.ImageGate.AllowedExtensions) != 5 {
		t.Errorf("unexpected allowed extensions: %v", cfg.ImageGate.AllowedExtensions)
	}
}

func TestLoaderFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
image_gate:
  min_width: 50
  min_height: 50
scoring:
  model_name: test-model
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoader(path).WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ImageGate.MinWidth != 50 {
		t.Errorf("min_width = %d, expected 50", cfg.ImageGate.MinWidth)
	}
	if cfg.Scoring.ModelName != "test-model" {
		t.Errorf("model_name = %q, expected test-model", cfg.Scoring.ModelName)
	}
	// Untouched sections keep their defaults.
	if cfg.Scoring.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("scoring base url lost default: %s", cfg.Scoring.BaseURL)
	}
}

func TestLoaderEnvCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Scoring.APIKey != "gsk_test" {
		t.Errorf("api key = %q, expected env override", cfg.Scoring.APIKey)
	}
}
