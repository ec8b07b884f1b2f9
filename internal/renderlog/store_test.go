package renderlog_test

import (
	"context"
	"testing"

	"filmstrip/internal/renderlog"
	"filmstrip/internal/testsupport"
)

func TestNewJobAndFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRenderLog(t, cfg)

	ctx := context.Background()
	job, err := store.NewJob(ctx, "/tmp/out.mp4", 42)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if job.ID == 0 || job.UUID == "" {
		t.Fatalf("expected assigned identifiers, got %#v", job)
	}
	if job.Status != renderlog.StatusPending {
		t.Fatalf("expected pending status, got %s", job.Status)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.OutputPath != "/tmp/out.mp4" || fetched.FramesTotal != 42 {
		t.Fatalf("unexpected fetched job: %#v", fetched)
	}
}

func TestNewJobRequiresOutputPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRenderLog(t, cfg)

	if _, err := store.NewJob(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

func TestJobLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRenderLog(t, cfg)

	ctx := context.Background()
	job, err := store.NewJob(ctx, "/tmp/out.mp4", 10)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	if err := store.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("MarkRunning failed: %v", err)
	}
	if err := store.UpdateProgress(ctx, job.ID, 4); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if err := store.MarkCompleted(ctx, job.ID, 10, 12.5); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Status != renderlog.StatusCompleted {
		t.Fatalf("expected completed, got %s", fetched.Status)
	}
	if fetched.FramesCommitted != 10 || fetched.DurationSeconds != 12.5 {
		t.Fatalf("unexpected completion fields: %#v", fetched)
	}
}

func TestMarkFailedRecordsMessage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRenderLog(t, cfg)

	ctx := context.Background()
	job, err := store.NewJob(ctx, "/tmp/out.mp4", 3)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := store.MarkFailed(ctx, job.ID, "frame 1 duration -1 must be positive"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Status != renderlog.StatusFailed || fetched.ErrorMessage == "" {
		t.Fatalf("unexpected failed job: %#v", fetched)
	}
}

func TestListFiltersAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRenderLog(t, cfg)

	ctx := context.Background()
	first, err := store.NewJob(ctx, "/tmp/a.mp4", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.NewJob(ctx, "/tmp/b.mp4", 2); err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := store.MarkCompleted(ctx, first.ID, 1, 1.0); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	completed, err := store.List(ctx, renderlog.StatusCompleted)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	stats, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.Pending != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}

	removed, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one remaining job, got %d", len(all))
	}
}
