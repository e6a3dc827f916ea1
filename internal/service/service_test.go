package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appglot/shotloc/internal/config"
	"github.com/appglot/shotloc/internal/gemini"
	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/persistence"
	"github.com/appglot/shotloc/internal/product"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/internal/translate"
)

type fakeBackend struct {
	calls    int
	response []byte
}

func (f *fakeBackend) TranslateImage(_ context.Context, _ gemini.ImageRequest) ([]byte, error) {
	f.calls++
	return f.response, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{180, 180, 180, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// seedProduct lays out a product with two locales and one phone
// screenshot in the primary locale.
func seedProduct(t *testing.T, productsDir, slug string) {
	t.Helper()
	writeFile(t, filepath.Join(productsDir, slug, "config.json"),
		[]byte(`{"default_locale":"en-US","preserve_words":["Shotloc"]}`))
	writeFile(t, filepath.Join(productsDir, slug, "locales", "en-US.json"), []byte(`{"title":"Notes"}`))
	writeFile(t, filepath.Join(productsDir, slug, "locales", "ja-JP.json"), []byte(`{"title":"メモ"}`))
	src := filepath.Join(screenshot.Dir(productsDir, slug, "en-US", screenshot.Phone), "1.png")
	writeFile(t, src, pngBytes(t, 10, 20))
}

func testConfig(productsDir string) *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{ProductsDir: productsDir},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	result, err := svc.Run(context.Background(), Request{Product: "demo", RawStaging: true})
	require.NoError(t, err)

	assert.Equal(t, []locale.Group{"ja-JP"}, result.Plan.Targets)
	assert.Equal(t, 1, result.Summary.Successful)
	assert.Equal(t, 1, result.Summary.Written)
	assert.Equal(t, 1, backend.calls)

	out := screenshot.RawPath(
		filepath.Join(screenshot.Dir(tmp, "demo", "ja-JP", screenshot.Phone), "1.png"))
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRun_DryRunNeverTouchesBackendOrDisk(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	result, err := svc.Run(context.Background(), Request{Product: "demo", DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Tasks, 1)
	assert.Equal(t, 0, backend.calls)
	for _, task := range result.Tasks {
		for _, out := range task.OutputPaths {
			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err))
		}
	}
}

func TestRun_FailFastInputErrors(t *testing.T) {
	tmp := t.TempDir()
	backend := &fakeBackend{}
	svc := New(testConfig(tmp), backend, nil)
	ctx := context.Background()

	_, err := svc.Run(ctx, Request{Product: "ghost"})
	assert.ErrorIs(t, err, product.ErrNotFound)

	// Product exists but has no locale files.
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "empty"), 0o755))
	_, err = svc.Run(ctx, Request{Product: "empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no locales")

	// Locales but no source screenshots.
	writeFile(t, filepath.Join(tmp, "bare", "locales", "en-US.json"), []byte(`{}`))
	writeFile(t, filepath.Join(tmp, "bare", "locales", "ja-JP.json"), []byte(`{}`))
	_, err = svc.Run(ctx, Request{Product: "bare"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no en-US screenshots")

	assert.Equal(t, 0, backend.calls)
}

func TestRun_ProgressClosedOnDryRun(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	progress := make(chan translate.Event, 4)
	_, err := svc.Run(context.Background(), Request{
		Product:  "demo",
		DryRun:   true,
		Progress: progress,
	})
	require.NoError(t, err)

	// Channel must be closed even though the orchestrator never ran.
	_, open := <-progress
	assert.False(t, open)
}

func TestRun_RecordsHistory(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")

	store, err := persistence.NewSQLiteStore(filepath.Join(tmp, "data", "shotloc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, store)

	result, err := svc.Run(context.Background(), Request{Product: "demo", RawStaging: true})
	require.NoError(t, err)

	runs, err := store.ListRuns(context.Background(), "demo", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.RunID, runs[0].ID)
	assert.Equal(t, []string{"ja-JP"}, runs[0].Targets)
	assert.Equal(t, 1, runs[0].Successful)
}

func TestRun_TargetFilterAndInvalidReporting(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	result, err := svc.Run(context.Background(), Request{
		Product: "demo",
		Targets: []string{"ja-JP", "xx-YY"},
		DryRun:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []locale.Group{"ja-JP"}, result.Plan.Targets)
	assert.Equal(t, []locale.Locale{"xx-YY"}, result.Plan.Invalid)
}

func TestRun_NumberFilterNarrowsWorklist(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "demo")
	writeFile(t,
		filepath.Join(screenshot.Dir(tmp, "demo", "en-US", screenshot.Phone), "2.png"),
		pngBytes(t, 10, 20))

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	result, err := svc.Run(context.Background(), Request{
		Product: "demo",
		Numbers: screenshot.NumberFilter{All: []int{2}},
		DryRun:  true,
	})
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "2.png", result.Tasks[0].Filename)

	// A filter matching nothing is an input error, not an empty run.
	_, err = svc.Run(context.Background(), Request{
		Product: "demo",
		Numbers: screenshot.NumberFilter{All: []int{7}},
		DryRun:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requested numbers")
	assert.Equal(t, 0, backend.calls)
}

func TestNormalize_PromotesRawAndValidates(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"), []byte(`{}`))
	writeFile(t, filepath.Join(tmp, "demo", "locales", "ja-JP.json"), []byte(`{}`))

	// Primary screenshot at the canonical phone size.
	target := screenshot.TargetSize(screenshot.Phone)
	src := filepath.Join(screenshot.Dir(tmp, "demo", "en-US", screenshot.Phone), "1.png")
	writeFile(t, src, pngBytes(t, target.Width, target.Height))

	// A staged translation waiting in raw/.
	staged := filepath.Join(screenshot.RawDir(tmp, "demo", "ja-JP", screenshot.Phone), "1.png")
	writeFile(t, staged, pngBytes(t, 124, 269))

	svc := New(testConfig(tmp), &fakeBackend{}, nil)
	result, err := svc.Normalize(context.Background(), NormalizeRequest{Product: "demo"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Promoted)
	assert.Equal(t, 1, result.Batch.Checked)
	assert.Equal(t, 0, result.Batch.Resized)
	assert.Equal(t, 0, result.Batch.ErrorCount)

	// Staged file is gone, final file is canonical.
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))
	final := filepath.Join(screenshot.Dir(tmp, "demo", "ja-JP", screenshot.Phone), "1.png")
	size, err := dimensionsOf(final)
	require.NoError(t, err)
	assert.Equal(t, target, size)
}

func TestNormalize_NumberFilterLeavesOthersStaged(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"), []byte(`{}`))
	writeFile(t, filepath.Join(tmp, "demo", "locales", "ja-JP.json"), []byte(`{}`))

	rawDir := screenshot.RawDir(tmp, "demo", "ja-JP", screenshot.Phone)
	writeFile(t, filepath.Join(rawDir, "1.png"), pngBytes(t, 124, 269))
	writeFile(t, filepath.Join(rawDir, "2.png"), pngBytes(t, 124, 269))

	svc := New(testConfig(tmp), &fakeBackend{}, nil)
	result, err := svc.Normalize(context.Background(), NormalizeRequest{
		Product: "demo",
		Numbers: screenshot.NumberFilter{All: []int{1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Promoted)
	_, err = os.Stat(filepath.Join(rawDir, "2.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(screenshot.Dir(tmp, "demo", "ja-JP", screenshot.Phone), "2.png"))
	assert.True(t, os.IsNotExist(err))
}

func dimensionsOf(path string) (screenshot.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return screenshot.Size{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return screenshot.Size{}, err
	}
	return screenshot.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

func TestRunAll_IsolatesBrokenProducts(t *testing.T) {
	tmp := t.TempDir()
	seedProduct(t, tmp, "good")
	// A product dir with locales but no screenshots fails its own run.
	writeFile(t, filepath.Join(tmp, "broken", "locales", "en-US.json"), []byte(`{}`))
	writeFile(t, filepath.Join(tmp, "broken", "locales", "de-DE.json"), []byte(`{}`))

	backend := &fakeBackend{response: pngBytes(t, 12, 24)}
	svc := New(testConfig(tmp), backend, nil)

	svc.RunAll(context.Background(), true)

	// The good product still got its translation in fused mode.
	out := filepath.Join(screenshot.Dir(tmp, "good", "ja-JP", screenshot.Phone), "1.png")
	size, err := dimensionsOf(out)
	require.NoError(t, err)
	assert.Equal(t, screenshot.TargetSize(screenshot.Phone), size)
}
