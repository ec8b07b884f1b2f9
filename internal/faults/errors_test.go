package faults_test

import (
	"errors"
	"testing"

	"filmstrip/internal/faults"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("stdin closed")
	err := faults.Wrap(faults.ErrFrame, "commit", "append frame", "sink rejected frame 3", cause)
	if !errors.Is(err, faults.ErrFrame) {
		t.Fatalf("expected frame marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	want := "frame error: commit: append frame: sink rejected frame 3: stdin closed"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if err.Error() != "transient failure: pipeline failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapSkipsEmptyParts(t *testing.T) {
	err := faults.Wrap(faults.ErrWriteTimeout, "commit", "", "sink not ready after 5 attempts", nil)
	want := "write timeout: commit: sink not ready after 5 attempts"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
