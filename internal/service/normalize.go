package service

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/appglot/shotloc/internal/imageproc"
	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/product"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/pkg/log"
)

// NormalizeRequest describes one resize pass over translated output.
type NormalizeRequest struct {
	Product string
	// Locales narrows the pass; empty means every translated locale
	// on disk except the primary.
	Locales []string
	// Devices narrows the pass; empty means all.
	Devices []screenshot.DeviceType
	// Numbers narrows the pass to specific screenshot indexes.
	Numbers screenshot.NumberFilter
}

// NormalizeResult tallies one resize pass.
type NormalizeResult struct {
	// Promoted counts raw/ staged files resized into final paths.
	Promoted int
	// Batch covers validation of the already-final files.
	Batch imageproc.BatchSummary
}

// Normalize finishes a raw-staged run and revalidates final files. Raw
// files are resized to the canonical device size and moved out of
// staging; final files are checked against the primary screenshot's
// dimensions and fixed in place when they drifted.
func (s *Service) Normalize(ctx context.Context, req NormalizeRequest) (*NormalizeResult, error) {
	prod, err := product.Load(s.cfg.Pipeline.ProductsDir, req.Product)
	if err != nil {
		return nil, err
	}
	primary := prod.Config.DefaultLocale

	bg, err := backgroundColor(prod.Config.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", req.Product, err)
	}

	locales := req.Locales
	if len(locales) == 0 {
		onDisk, err := screenshot.ListLocales(s.cfg.Pipeline.ProductsDir, req.Product)
		if err != nil {
			return nil, err
		}
		for _, name := range onDisk {
			if name != string(primary) {
				locales = append(locales, name)
			}
		}
	}

	devices := req.Devices
	if len(devices) == 0 {
		devices = screenshot.DeviceOrder
	}

	ret := &NormalizeResult{}
	pairs := make([]imageproc.Pair, 0)
	for _, name := range locales {
		if ctx.Err() != nil {
			return ret, ctx.Err()
		}
		l := locale.Locale(name)
		for _, d := range devices {
			if err := s.promoteRaw(ret, req, l, d, bg); err != nil {
				return ret, err
			}

			shots, err := screenshot.Scan(s.cfg.Pipeline.ProductsDir, req.Product, l, []screenshot.DeviceType{d})
			if err != nil {
				return ret, err
			}
			shots = req.Numbers.Apply(shots)
			for _, shot := range shots {
				pairs = append(pairs, imageproc.Pair{
					SourcePath: filepath.Join(
						screenshot.Dir(s.cfg.Pipeline.ProductsDir, req.Product, primary, d), shot.Filename),
					TranslatedPath: shot.Path,
				})
			}
		}
	}

	ret.Batch = imageproc.ValidateBatch(pairs, bg)
	return ret, nil
}

// promoteRaw resizes every staged file of one (locale, device) bucket
// to the canonical device size, writes it to its final path, and clears
// the staging copy.
func (s *Service) promoteRaw(ret *NormalizeResult, req NormalizeRequest, l locale.Locale, d screenshot.DeviceType, bg *color.NRGBA) error {
	slug := req.Product
	rawDir := screenshot.RawDir(s.cfg.Pipeline.ProductsDir, slug, l, d)
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, ok := screenshot.ParseIndex(entry.Name())
		if !ok || !req.Numbers.Allows(d, index) {
			continue
		}
		rawPath := filepath.Join(rawDir, entry.Name())
		finalPath := filepath.Join(screenshot.Dir(s.cfg.Pipeline.ProductsDir, slug, l, d), entry.Name())
		if err := imageproc.ResizeToTarget(rawPath, finalPath, screenshot.TargetSize(d), bg); err != nil {
			ret.Batch.ErrorCount++
			ret.Batch.Errors = append(ret.Batch.Errors, imageproc.ItemError{Path: rawPath, Err: err.Error()})
			log.Warn("promote %s: %v", rawPath, err)
			continue
		}
		if err := os.Remove(rawPath); err != nil {
			return err
		}
		ret.Promoted++
	}
	return nil
}
