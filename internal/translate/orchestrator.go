package translate

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/appglot/shotloc/internal/gemini"
	"github.com/appglot/shotloc/internal/imageproc"
	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/pkg/file"
	"github.com/appglot/shotloc/pkg/log"
)

// Backend is the image translation service contract.
type Backend interface {
	TranslateImage(ctx context.Context, req gemini.ImageRequest) ([]byte, error)
}

// Orchestrator executes translation worklists strictly sequentially.
type Orchestrator struct {
	backend Backend
}

func NewOrchestrator(backend Backend) *Orchestrator {
	return &Orchestrator{backend: backend}
}

// Execute runs tasks in order against the backend, one call per task,
// separated by opts.Cooldown. The single returned image is copied to
// every output path of the task. Failures are isolated per task and
// collected; there is no retry and no rollback, files written before
// a failure stay in place. When opts.Progress is non-nil it is closed
// before Execute returns.
func (o *Orchestrator) Execute(ctx context.Context, tasks []Task, opts Options) Summary {
	if opts.Progress != nil {
		defer close(opts.Progress)
	}

	var ret Summary
	total := len(tasks)
	for i, task := range tasks {
		o.emit(opts, i+1, total, task, StatusTranslating)

		// Every task still gets its translating/terminal event pair
		// after cancellation, it just fails without a backend call.
		if err := ctx.Err(); err != nil {
			o.fail(&ret, i, total, task, opts, err.Error())
			continue
		}

		written, err := o.runTask(ctx, task, opts)
		ret.Written += written
		if err != nil {
			o.fail(&ret, i, total, task, opts, err.Error())
		} else {
			ret.Successful++
			o.emit(opts, i+1, total, task, StatusCompleted)
		}

		if opts.Cooldown > 0 && i < total-1 {
			select {
			case <-ctx.Done():
			case <-time.After(opts.Cooldown):
			}
		}
	}
	return ret
}

func (o *Orchestrator) runTask(ctx context.Context, task Task, opts Options) (written int, err error) {
	data, err := os.ReadFile(task.SourcePath)
	if err != nil {
		return 0, err
	}

	translated, err := o.backend.TranslateImage(ctx, gemini.ImageRequest{
		Data:           data,
		MimeType:       mimeType(task.SourcePath),
		SourceLanguage: locale.DisplayName(task.SourceLocale),
		TargetLanguage: locale.GroupDisplayName(task.Target),
		AspectRatio:    screenshot.AspectHint(task.Device),
		PreserveWords:  opts.PreserveWords,
	})
	if err != nil {
		return 0, err
	}

	// Fan out: every member locale gets the same bytes.
	for _, out := range task.OutputPaths {
		target := out
		if opts.RawStaging {
			target = screenshot.RawPath(out)
		}
		if err := file.EnsureDir(filepath.Dir(target)); err != nil {
			return written, err
		}
		if err := file.WriteAtomic(target, translated, 0o644); err != nil {
			return written, err
		}
		written++

		if !opts.RawStaging {
			if _, err := imageproc.NormalizeToDevice(target, task.Device, opts.BackgroundColor); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (o *Orchestrator) fail(ret *Summary, i, total int, task Task, opts Options, msg string) {
	ret.Failed++
	ret.Errors = append(ret.Errors, ItemError{Path: task.SourcePath, Err: msg})
	log.Warn("translate %s -> %s failed: %s", task.SourcePath, task.Target, msg)
	o.emit(opts, i+1, total, task, StatusFailed)
}

func (o *Orchestrator) emit(opts Options, current, total int, task Task, status Status) {
	if opts.Progress == nil {
		return
	}
	opts.Progress <- Event{
		Current:  current,
		Total:    total,
		Target:   task.Target,
		Device:   task.Device,
		Filename: task.Filename,
		Status:   status,
	}
}
