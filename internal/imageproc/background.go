package imageproc

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// BackgroundMode selects where background samples are taken from.
type BackgroundMode int

const (
	// SampleBorder samples every edge of the image.
	SampleBorder BackgroundMode = iota
	// SampleCorners samples small square regions in the four corners.
	SampleCorners
)

// quantStep buckets sampled channels to suppress compression noise
// when voting for the dominant color.
const quantStep = 32

const cornerRegion = 24

// DetectBackgroundColor returns the dominant color along the image
// border (or corners), the fill color used when padding a resized
// screenshot. Falls back to white when nothing can be sampled.
func DetectBackgroundColor(path string, mode BackgroundMode) (color.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("open image %s: %w", path, err)
	}
	return detectBackground(img, mode), nil
}

func detectBackground(img image.Image, mode BackgroundMode) color.NRGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	samples := make([]color.NRGBA, 0, 4*(bounds.Dx()+bounds.Dy()))
	switch mode {
	case SampleCorners:
		k := cornerRegion
		if k > bounds.Dx() {
			k = bounds.Dx()
		}
		if k > bounds.Dy() {
			k = bounds.Dy()
		}
		corners := []image.Rectangle{
			image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+k, bounds.Min.Y+k),
			image.Rect(bounds.Max.X-k, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+k),
			image.Rect(bounds.Min.X, bounds.Max.Y-k, bounds.Min.X+k, bounds.Max.Y),
			image.Rect(bounds.Max.X-k, bounds.Max.Y-k, bounds.Max.X, bounds.Max.Y),
		}
		for _, r := range corners {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					samples = append(samples, toNRGBA(img.At(x, y)))
				}
			}
		}
	default:
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, toNRGBA(img.At(x, bounds.Min.Y)))
			samples = append(samples, toNRGBA(img.At(x, bounds.Max.Y-1)))
		}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			samples = append(samples, toNRGBA(img.At(bounds.Min.X, y)))
			samples = append(samples, toNRGBA(img.At(bounds.Max.X-1, y)))
		}
	}

	if len(samples) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	// Vote on quantized colors, then answer with the first sample that
	// falls into the winning bucket so the result is a real pixel color.
	counts := make(map[color.NRGBA]int)
	for _, s := range samples {
		counts[quantize(s)]++
	}
	var winner color.NRGBA
	best := -1
	for bucket, n := range counts {
		if n > best {
			best = n
			winner = bucket
		}
	}
	for _, s := range samples {
		if quantize(s) == winner {
			return s
		}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

func quantize(c color.NRGBA) color.NRGBA {
	q := func(v uint8) uint8 { return v - v%quantStep }
	return color.NRGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: 255}
}

func toNRGBA(c color.Color) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color,
// the form used by per-product background overrides.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
