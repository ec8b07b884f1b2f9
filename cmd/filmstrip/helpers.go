package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filmstrip/internal/config"
)

var supportedImageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

func isSupportedImage(path string) bool {
	_, ok := supportedImageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// collectImages resolves arguments into an ordered list of image files.
// Directory arguments expand to their supported entries in lexical order,
// which keeps numbered sequences (frame_0001.png, ...) in frame order.
func collectImages(args []string) ([]string, error) {
	var images []string

	for _, arg := range args {
		path, err := config.ExpandPath(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("inspect path %q: %w", arg, err)
		}

		if !info.IsDir() {
			if !isSupportedImage(path) {
				return nil, fmt.Errorf("unsupported image %q (want png or jpeg)", arg)
			}
			images = append(images, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %q: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() || !isSupportedImage(entry.Name()) {
				continue
			}
			found = append(found, filepath.Join(path, entry.Name()))
		}
		sort.Strings(found)
		images = append(images, found...)
	}

	if len(images) == 0 {
		return nil, errors.New("no images found in the given paths")
	}
	return images, nil
}

// frameDurations resolves per-frame display durations in seconds. An explicit
// list wins over the uniform flag; with neither set every frame lasts one
// encoder tick.
func frameDurations(count int, uniform float64, list string, fps int) ([]float64, error) {
	durations := make([]float64, count)

	if strings.TrimSpace(list) != "" {
		parts := strings.Split(list, ",")
		if len(parts) != count {
			return nil, fmt.Errorf("durations list has %d entries for %d frames", len(parts), count)
		}
		for i, part := range parts {
			value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(part), err)
			}
			if value <= 0 {
				return nil, fmt.Errorf("duration for frame %d must be positive, got %g", i, value)
			}
			durations[i] = value
		}
		return durations, nil
	}

	perFrame := uniform
	if perFrame <= 0 {
		if fps <= 0 {
			fps = 30
		}
		perFrame = 1.0 / float64(fps)
	}
	for i := range durations {
		durations[i] = perFrame
	}
	return durations, nil
}

// loadImage decodes a single frame from disk.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", filepath.Base(path), err)
	}
	return img, nil
}

var titleCaser = cases.Title(language.English)

// displayTitle derives a human-readable title from an input path, e.g.
// "sunset_timelapse" becomes "Sunset Timelapse".
func displayTitle(path string) string {
	base := filepath.Base(strings.TrimSuffix(path, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return titleCaser.String(base)
}
