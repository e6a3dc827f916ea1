package imageproc

import (
	"fmt"
	"image"
	"os"

	// Register decoders for the screenshot formats we accept.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/appglot/shotloc/internal/screenshot"
)

// Dimensions reads the pixel size of an image file without decoding
// the full raster.
func Dimensions(path string) (screenshot.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return screenshot.Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return screenshot.Size{}, fmt.Errorf("decode image %s: %w", path, err)
	}
	return screenshot.Size{Width: cfg.Width, Height: cfg.Height}, nil
}
