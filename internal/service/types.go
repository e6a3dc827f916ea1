package service

import (
	"github.com/appglot/shotloc/internal/plan"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/internal/translate"
)

// Request describes one translation run for one product.
type Request struct {
	Product string
	// Targets narrows the run to specific locales; empty means every
	// product locale except the primary.
	Targets []string
	// Devices narrows the run to specific device types; empty means all.
	Devices []screenshot.DeviceType
	// Numbers narrows the run to specific screenshot indexes, flat or
	// per device type.
	Numbers screenshot.NumberFilter
	// SkipExisting drops output paths whose file already exists.
	SkipExisting bool
	// DryRun builds and reports the worklist without calling the
	// backend or writing any file.
	DryRun bool
	// RawStaging writes translated bytes to raw/ and defers resizing.
	RawStaging bool
	// PreserveWords extends the product's configured preserve list.
	PreserveWords []string
	// Progress receives orchestration events; closed when the run ends.
	Progress chan<- translate.Event
}

// Result is the outcome of one run.
type Result struct {
	RunID   string
	Product string
	Primary string
	Plan    plan.Plan
	Tasks   []translate.Task
	DryRun  bool
	Summary translate.Summary
}
