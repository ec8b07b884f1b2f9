package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSinkInit marks failures creating or configuring the output sink.
	// Fatal to pipeline construction.
	ErrSinkInit = errors.New("sink init error")
	// ErrFrame marks per-frame faults: invalid duration, conversion
	// failure, or the sink rejecting an append.
	ErrFrame = errors.New("frame error")
	// ErrWriteTimeout marks sink readiness retries being exhausted during
	// a commit attempt.
	ErrWriteTimeout = errors.New("write timeout")
	// ErrConfiguration marks invalid or missing configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks failures that are likely to succeed on retry.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
