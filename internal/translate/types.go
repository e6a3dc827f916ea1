package translate

import (
	"image/color"
	"time"

	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/screenshot"
)

// Task is one backend call: translate one source screenshot into one
// target group, fanning the result out to every pending member locale.
// Tasks are built per run and never persisted.
type Task struct {
	SourcePath   string
	SourceLocale locale.Locale
	Target       locale.Group
	Device       screenshot.DeviceType
	Filename     string
	// OutputPaths lists one final path per member locale still
	// pending, in registry member order. The execution step iterates
	// this list deterministically.
	OutputPaths []string
}

// Status of a task as reported on the progress stream.
type Status string

const (
	StatusTranslating Status = "translating"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Event is one progress update. Events arrive in task order, one
// "translating" followed by one terminal status per task.
type Event struct {
	Current  int
	Total    int
	Target   locale.Group
	Device   screenshot.DeviceType
	Filename string
	Status   Status
}

// ItemError records one failed task.
type ItemError struct {
	Path string
	Err  string
}

// Summary tallies an executed batch.
type Summary struct {
	Successful int
	Failed     int
	Written    int // output files written, counting fan-out copies
	Errors     []ItemError
}

// Options tunes a translation run.
type Options struct {
	// Cooldown inserted between backend calls to respect rate limits.
	Cooldown time.Duration
	// RawStaging writes translated bytes to the raw/ staging dir and
	// leaves normalization to a separate resize pass. The default mode
	// normalizes each output in place right after writing.
	RawStaging bool
	// BackgroundColor overrides detected padding color when resizing.
	BackgroundColor *color.NRGBA
	// PreserveWords are passed through to every backend call.
	PreserveWords []string
	// Progress, when non-nil, receives one stream of events; the
	// channel is closed when Execute returns.
	Progress chan<- Event
}
