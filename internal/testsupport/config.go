// Package testsupport provides shared helpers for package tests: temp-backed
// configs, queue stores, and fixture audio files.
package testsupport

import (
	"path/filepath"
	"testing"

	"singe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.LockDir = filepath.Join(base, "locks")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDevice overrides the burner device path on the test config.
func WithDevice(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Drive.Device = path
	}
}

// WithVerify enables or disables post-burn verification.
func WithVerify(enabled bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Verify.Enabled = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
