package testing

import (
	"testing"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/logging"
)

func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.IP = "127.0.0.1"
	cfg.Log.Level = "DEBUG"
	cfg.Log.Dir = ""
	cfg.Log.File = ""
	cfg.Storage.DSN = "file::memory:?cache=shared"

	return cfg
}

func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	return logging.Discard()
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}
