package persistence

import "time"

// RunRecord is one completed translation run for one product.
type RunRecord struct {
	ID         string
	Product    string
	Primary    string
	Targets    []string
	Skipped    []string
	Successful int
	Failed     int
	Written    int
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunFailure is one failed file within a run.
type RunFailure struct {
	RunID  string
	Path   string
	Reason string
}
