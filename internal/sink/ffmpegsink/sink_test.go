package ffmpegsink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filmstrip/internal/faults"
)

func TestNewRefusesExistingDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.mp4")
	if err := os.WriteFile(dest, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	_, err := New(dest, 640, 480, Options{})
	if !errors.Is(err, faults.ErrSinkInit) {
		t.Fatalf("expected sink init error, got %v", err)
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.mp4")
	if _, err := New(dest, 0, 480, Options{}); !errors.Is(err, faults.ErrSinkInit) {
		t.Fatalf("expected sink init error, got %v", err)
	}
}

func TestNewRejectsMissingBinary(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.mp4")
	_, err := New(dest, 640, 480, Options{Binary: filepath.Join(t.TempDir(), "no-such-ffmpeg")})
	if !errors.Is(err, faults.ErrSinkInit) {
		t.Fatalf("expected sink init error for missing binary, got %v", err)
	}
}

func TestTickCount(t *testing.T) {
	cases := []struct {
		name string
		from float64
		to   float64
		fps  int
		want int
	}{
		{"one second at 30fps", 0, 1, 30, 30},
		{"half second at 30fps", 1, 1.5, 30, 15},
		{"sub-tick duration still emits a frame", 0, 0.001, 30, 1},
		{"three seconds at 24fps", 2, 5, 24, 72},
		{"rounds to nearest tick", 0, 0.05, 30, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tickCount(tc.from, tc.to, tc.fps); got != tc.want {
				t.Fatalf("tickCount(%v, %v, %d) = %d, want %d", tc.from, tc.to, tc.fps, got, tc.want)
			}
		})
	}
}
