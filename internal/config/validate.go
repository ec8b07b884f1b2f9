package config

import (
	"fmt"
	"strings"
)

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return fmt.Errorf("paths.state_dir must be set")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Width%2 != 0 || c.Render.Height%2 != 0 {
		return fmt.Errorf("render.width and render.height must be even for yuv420p output, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Render.PendingLowWater <= 0 {
		return fmt.Errorf("render.pending_low_water must be positive, got %d", c.Render.PendingLowWater)
	}
	if c.Render.PendingHighWater <= c.Render.PendingLowWater {
		return fmt.Errorf("render.pending_high_water (%d) must exceed render.pending_low_water (%d)",
			c.Render.PendingHighWater, c.Render.PendingLowWater)
	}
	if c.Render.SinkReadyRetries <= 0 {
		return fmt.Errorf("render.sink_ready_retries must be positive, got %d", c.Render.SinkReadyRetries)
	}
	if c.Render.SinkReadyBackoffMS <= 0 {
		return fmt.Errorf("render.sink_ready_backoff_ms must be positive, got %d", c.Render.SinkReadyBackoffMS)
	}
	if c.Render.MinFreeDiskGiB < 0 {
		return fmt.Errorf("render.min_free_disk_gib must not be negative, got %d", c.Render.MinFreeDiskGiB)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
