package imageproc

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/pkg/file"
)

// ResizeToTarget scales the image at inputPath to fit entirely inside
// target (never cropping content), pads the remaining canvas with bg,
// and writes an image of exactly target size to outputPath. When bg is
// nil the fill color is detected from the input's border. The write is
// atomic (temp file + rename).
//
// The output encoding follows outputPath's extension; extensions
// without an encoder (webp) are written as PNG data, so callers should
// rename such outputs to .png first.
func ResizeToTarget(inputPath, outputPath string, target screenshot.Size, bg *color.NRGBA) error {
	if target.Width <= 0 || target.Height <= 0 {
		return fmt.Errorf("invalid target size %s", target)
	}

	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open image %s: %w", inputPath, err)
	}

	fill := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if bg != nil {
		fill = *bg
	} else {
		fill = detectBackground(img, SampleBorder)
	}

	// imaging.Fit never upscales, but backend output is routinely
	// smaller than the canonical store size, so compute the fit scale
	// in both directions ourselves.
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty image %s", inputPath)
	}
	scale := math.Min(
		float64(target.Width)/float64(w),
		float64(target.Height)/float64(h),
	)
	fw := max(int(math.Round(float64(w)*scale)), 1)
	fh := max(int(math.Round(float64(h)*scale)), 1)

	fitted := imaging.Resize(img, fw, fh, imaging.Lanczos)
	canvas := imaging.New(target.Width, target.Height, fill)
	composed := imaging.PasteCenter(canvas, fitted)

	format, err := imaging.FormatFromFilename(outputPath)
	if err != nil {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, composed, format); err != nil {
		return fmt.Errorf("encode %s: %w", outputPath, err)
	}
	if err := file.WriteAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}
