package main

import (
	"os"
	"path/filepath"
	"testing"

	"filmstrip/internal/config"
)

func TestFrameDurationsExplicitList(t *testing.T) {
	durations, err := frameDurations(3, 0, "0.5, 1.25 ,3", 30)
	if err != nil {
		t.Fatalf("frameDurations: %v", err)
	}
	want := []float64{0.5, 1.25, 3}
	for i, d := range durations {
		if d != want[i] {
			t.Fatalf("duration %d: got %g want %g", i, d, want[i])
		}
	}
}

func TestFrameDurationsListLengthMismatch(t *testing.T) {
	if _, err := frameDurations(3, 0, "1,2", 30); err == nil {
		t.Fatal("expected error for short list")
	}
}

func TestFrameDurationsRejectsNonPositive(t *testing.T) {
	if _, err := frameDurations(2, 0, "1,-0.5", 30); err == nil {
		t.Fatal("expected error for negative duration")
	}
	if _, err := frameDurations(2, 0, "1,abc", 30); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}

func TestFrameDurationsUniform(t *testing.T) {
	durations, err := frameDurations(4, 2.5, "", 30)
	if err != nil {
		t.Fatalf("frameDurations: %v", err)
	}
	for i, d := range durations {
		if d != 2.5 {
			t.Fatalf("duration %d: got %g want 2.5", i, d)
		}
	}
}

func TestFrameDurationsDefaultsToOneTick(t *testing.T) {
	durations, err := frameDurations(2, 0, "", 25)
	if err != nil {
		t.Fatalf("frameDurations: %v", err)
	}
	if durations[0] != 1.0/25.0 {
		t.Fatalf("got %g want %g", durations[0], 1.0/25.0)
	}
}

func TestCollectImagesSortsDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_0002.png", "frame_0001.png", "frame_0003.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	images, err := collectImages([]string{dir})
	if err != nil {
		t.Fatalf("collectImages: %v", err)
	}
	want := []string{"frame_0001.png", "frame_0002.png", "frame_0003.jpg"}
	if len(images) != len(want) {
		t.Fatalf("got %d images, want %d", len(images), len(want))
	}
	for i, path := range images {
		if filepath.Base(path) != want[i] {
			t.Fatalf("image %d: got %s want %s", i, filepath.Base(path), want[i])
		}
	}
}

func TestCollectImagesRejectsUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.gif")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := collectImages([]string{path}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestCollectImagesEmptyDirectory(t *testing.T) {
	if _, err := collectImages([]string{t.TempDir()}); err == nil {
		t.Fatal("expected error for directory with no images")
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sunset_timelapse", "Sunset Timelapse"},
		{"/data/shots/beach-day.png", "Beach Day"},
		{"frames/", "Frames"},
		{"", "Untitled"},
	}
	for _, tc := range cases {
		if got := displayTitle(tc.in); got != tc.want {
			t.Fatalf("displayTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveOutputDefaultsIntoOutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = "/tmp/videos"

	output, err := resolveOutput(&cfg, "", "/data/shots/sunset")
	if err != nil {
		t.Fatalf("resolveOutput: %v", err)
	}
	if output != "/tmp/videos/sunset.mp4" {
		t.Fatalf("got %s", output)
	}
}

func TestResolveOutputHonorsFlag(t *testing.T) {
	cfg := config.Default()

	output, err := resolveOutput(&cfg, "/tmp/explicit.mp4", "/data/shots")
	if err != nil {
		t.Fatalf("resolveOutput: %v", err)
	}
	if output != "/tmp/explicit.mp4" {
		t.Fatalf("got %s", output)
	}
}
