package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"output_dir", &c.Paths.OutputDir},
		{"log_dir", &c.Paths.LogDir},
		{"state_dir", &c.Paths.StateDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("normalize %s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeRender() {
	c.Render.FFmpegBinary = strings.TrimSpace(c.Render.FFmpegBinary)
	c.Render.VideoCodec = strings.TrimSpace(c.Render.VideoCodec)
	if c.Render.VideoCodec == "" {
		c.Render.VideoCodec = defaultVideoCodec
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultFPS
	}
	if c.Render.PendingHighWater == 0 {
		c.Render.PendingHighWater = defaultPendingHighWater
	}
	if c.Render.PendingLowWater == 0 {
		c.Render.PendingLowWater = defaultPendingLowWater
	}
	if c.Render.SinkReadyRetries == 0 {
		c.Render.SinkReadyRetries = defaultSinkReadyRetries
	}
	if c.Render.SinkReadyBackoffMS == 0 {
		c.Render.SinkReadyBackoffMS = defaultSinkReadyBackoffMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
