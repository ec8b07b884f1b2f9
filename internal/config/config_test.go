package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filmstrip/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Render.PendingHighWater != 20 || cfg.Render.PendingLowWater != 10 {
		t.Fatalf("unexpected watermark defaults: %d/%d", cfg.Render.PendingHighWater, cfg.Render.PendingLowWater)
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected default binary %q", cfg.FFmpegBinary())
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + dir + `/out"
state_dir = "` + dir + `/state"
log_dir = "` + dir + `/logs"

[render]
width = 640
height = 480
fps = 24
pending_high_water = 8
pending_low_water = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Fatalf("unexpected geometry %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Render.SinkReadyRetries != 5 {
		t.Fatalf("expected retry default to backfill, got %d", cfg.Render.SinkReadyRetries)
	}
}

func TestValidateRejectsInvertedWatermarks(t *testing.T) {
	cfg := config.Default()
	cfg.Render.PendingHighWater = 4
	cfg.Render.PendingLowWater = 10
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "pending_high_water") {
		t.Fatalf("expected watermark validation error, got %v", err)
	}
}

func TestValidateRejectsOddGeometry(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width = 641
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "even") {
		t.Fatalf("expected geometry validation error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
