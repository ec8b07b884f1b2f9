// Package testsupport provides helpers for constructing throwaway configs
// and stores in tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"filmstrip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Render.Width = 64
	cfg.Render.Height = 48
	cfg.Render.SinkReadyBackoffMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithGeometry overrides the render frame geometry.
func WithGeometry(width, height int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.Width = width
		cfg.Render.Height = height
	}
}
