package renderlog

import "time"

// Status describes a render job's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job records one render: its inputs, output artifact, and progress.
type Job struct {
	ID              int64     `json:"id"`
	UUID            string    `json:"uuid"`
	OutputPath      string    `json:"output_path"`
	Status          Status    `json:"status"`
	FramesTotal     int64     `json:"frames_total"`
	FramesCommitted int64     `json:"frames_committed"`
	DurationSeconds float64   `json:"duration_seconds"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Stats is a count of jobs grouped by status.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}
