package imageproc

import (
	"image/color"
	"os"

	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/pkg/log"
)

// maxBatchErrors bounds the per-file error list carried in a batch
// summary; the total count is always accurate.
const maxBatchErrors = 20

// Result describes one validate/resize decision.
type Result struct {
	Resized    bool
	Source     screenshot.Size
	Translated screenshot.Size
	Final      screenshot.Size
}

// ValidateAndResize compares the translated image's dimensions to the
// source screenshot's and resizes the translated file in place when
// they differ. A translated file that already matches is left
// untouched byte for byte.
func ValidateAndResize(sourcePath, translatedPath string, bg *color.NRGBA) (Result, error) {
	srcSize, err := Dimensions(sourcePath)
	if err != nil {
		return Result{}, err
	}
	transSize, err := Dimensions(translatedPath)
	if err != nil {
		return Result{}, err
	}

	ret := Result{Source: srcSize, Translated: transSize, Final: transSize}
	if transSize == srcSize {
		return ret, nil
	}

	if err := ResizeToTarget(translatedPath, translatedPath, srcSize, bg); err != nil {
		return ret, err
	}
	ret.Resized = true
	ret.Final = srcSize
	return ret, nil
}

// NormalizeToDevice resizes the image in place to the canonical upload
// size for its device class, regardless of any source image. Already
// conforming files are not rewritten.
func NormalizeToDevice(path string, device screenshot.DeviceType, bg *color.NRGBA) (Result, error) {
	target := screenshot.TargetSize(device)

	size, err := Dimensions(path)
	if err != nil {
		return Result{}, err
	}
	ret := Result{Translated: size, Final: size}
	if size == target {
		return ret, nil
	}

	if err := ResizeToTarget(path, path, target, bg); err != nil {
		return ret, err
	}
	ret.Resized = true
	ret.Final = target
	return ret, nil
}

// Pair couples a source screenshot with its translated counterpart.
type Pair struct {
	SourcePath     string
	TranslatedPath string
}

// ItemError records one failed file inside a batch.
type ItemError struct {
	Path string
	Err  string
}

// BatchSummary aggregates a batch validate/resize run.
type BatchSummary struct {
	Checked    int
	Resized    int
	Skipped    int // translated file missing, nothing to validate
	ErrorCount int
	Errors     []ItemError
}

// ValidateBatch runs ValidateAndResize over pairs, skipping pairs
// whose translated file does not exist yet. Failures are isolated per
// file and never stop the batch.
func ValidateBatch(pairs []Pair, bg *color.NRGBA) BatchSummary {
	var ret BatchSummary
	for _, p := range pairs {
		if _, err := os.Stat(p.TranslatedPath); os.IsNotExist(err) {
			ret.Skipped++
			continue
		}

		res, err := ValidateAndResize(p.SourcePath, p.TranslatedPath, bg)
		if err != nil {
			ret.ErrorCount++
			if len(ret.Errors) < maxBatchErrors {
				ret.Errors = append(ret.Errors, ItemError{Path: p.TranslatedPath, Err: err.Error()})
			}
			log.Warn("validate %s: %v", p.TranslatedPath, err)
			continue
		}
		ret.Checked++
		if res.Resized {
			ret.Resized++
			log.Info("resized %s: %s -> %s", p.TranslatedPath, res.Translated, res.Final)
		}
	}
	return ret
}
