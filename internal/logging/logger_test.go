package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"filmstrip/internal/logging"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "sequencer")
	logger.Info("frame committed", logging.Uint64("frame", 7), logging.Float64("pts", 3.5))

	line := buf.String()
	if !strings.Contains(line, "INFO sequencer: frame committed") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "frame=7") || !strings.Contains(line, "pts=3.5") {
		t.Fatalf("missing attrs in %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("sink stalled", logging.Error(errors.New("not ready")))
	if !strings.Contains(buf.String(), `error="not ready"`) {
		t.Fatalf("expected quoted error, got %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info below warn to be dropped, got %q", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("expected warn line")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("render started")
	line := buf.String()
	if !strings.Contains(line, `"msg":"render started"`) || !strings.Contains(line, `"level":"info"`) {
		t.Fatalf("unexpected json line %q", line)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
