package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filmstrip/internal/config"
	"filmstrip/internal/renderlog"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Render.Width = 64
	cfgVal.Render.Height = 48
	cfg := &cfgVal

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\noutput_dir = %q\nlog_dir = %q\nstate_dir = %q\n\n[render]\nwidth = %d\nheight = %d\n",
		cfg.Paths.OutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.StateDir,
		cfg.Render.Width,
		cfg.Render.Height,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got %q", needle, haystack)
	}
}

func TestCLIVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, version)
}

func TestCLIJobsCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	store, err := renderlog.Open(env.cfg)
	if err != nil {
		t.Fatalf("renderlog.Open: %v", err)
	}
	defer store.Close()

	first, err := store.NewJob(ctx, filepath.Join(env.baseDir, "out", "alpha.mp4"), 3)
	if err != nil {
		t.Fatalf("NewJob alpha: %v", err)
	}
	if err := store.MarkCompleted(ctx, first.ID, 3, 1.5); err != nil {
		t.Fatalf("mark alpha completed: %v", err)
	}
	second, err := store.NewJob(ctx, filepath.Join(env.baseDir, "out", "beta.mp4"), 5)
	if err != nil {
		t.Fatalf("NewJob beta: %v", err)
	}
	if err := store.MarkFailed(ctx, second.ID, "frame 2 duration -1 must be positive"); err != nil {
		t.Fatalf("mark beta failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"jobs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "alpha.mp4")
	requireContains(t, out, "beta.mp4")

	out, _, err = runCLI(t, []string{"jobs", "list", "--status", "failed"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list --status failed: %v", err)
	}
	requireContains(t, out, "beta.mp4")
	if strings.Contains(out, "alpha.mp4") {
		t.Fatalf("failed filter leaked completed job: %q", out)
	}

	out, _, err = runCLI(t, []string{"jobs", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs stats: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "failed")

	out, _, err = runCLI(t, []string{"jobs", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs clear: %v", err)
	}
	requireContains(t, out, "Removed 1 job(s)")

	out, _, err = runCLI(t, []string{"jobs", "clear", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs clear --all: %v", err)
	}
	requireContains(t, out, "Removed 1 job(s)")

	out, _, err = runCLI(t, []string{"jobs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list after clear: %v", err)
	}
	requireContains(t, out, "No render jobs recorded")
}

func TestCLIJobsListJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := renderlog.Open(env.cfg)
	if err != nil {
		t.Fatalf("renderlog.Open: %v", err)
	}
	defer store.Close()
	if _, err := store.NewJob(context.Background(), "/tmp/json.mp4", 1); err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	out, _, err := runCLI(t, []string{"jobs", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list --json: %v", err)
	}
	requireContains(t, out, `"output_path": "/tmp/json.mp4"`)
}

func TestCLIRenderRejectsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"render", filepath.Join(env.baseDir, "missing.png")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
