package preflight

import (
	"filmstrip/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run executes all preflight checks for the given config.
func Run(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckEncoder(cfg.FFmpegBinary()),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}

	if cfg.Render.MinFreeDiskGiB > 0 {
		results = append(results, CheckDiskSpace(cfg.Paths.OutputDir, cfg.Render.MinFreeDiskGiB))
	}

	return results
}

// Passed reports whether every result in the set passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
