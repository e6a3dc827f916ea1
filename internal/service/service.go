package service

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/appglot/shotloc/internal/aso"
	"github.com/appglot/shotloc/internal/config"
	"github.com/appglot/shotloc/internal/imageproc"
	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/persistence"
	"github.com/appglot/shotloc/internal/plan"
	"github.com/appglot/shotloc/internal/product"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/internal/translate"
	"github.com/appglot/shotloc/pkg/log"
)

// Service runs the screenshot localization pipeline end to end:
// load product, scan inventory, plan locales, translate, normalize,
// record history.
type Service struct {
	cfg     *config.Config
	backend translate.Backend
	store   *persistence.SQLiteStore
}

// New wires a pipeline service. store may be nil, which disables run
// history.
func New(cfg *config.Config, backend translate.Backend, store *persistence.SQLiteStore) *Service {
	return &Service{cfg: cfg, backend: backend, store: store}
}

// Run executes one translation run. Input errors (unknown product, no
// locales, no source screenshots) fail fast before any backend call.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now().UTC()

	prod, err := product.Load(s.cfg.Pipeline.ProductsDir, req.Product)
	if err != nil {
		s.closeProgress(req)
		return nil, err
	}
	if len(prod.Locales) == 0 {
		s.closeProgress(req)
		return nil, fmt.Errorf("product %s has no locales", req.Product)
	}
	primary := prod.Config.DefaultLocale

	shots, err := screenshot.Scan(s.cfg.Pipeline.ProductsDir, req.Product, primary, req.Devices)
	if err != nil {
		s.closeProgress(req)
		return nil, err
	}
	if len(shots) == 0 {
		s.closeProgress(req)
		return nil, fmt.Errorf("product %s has no %s screenshots", req.Product, primary)
	}
	if !req.Numbers.Empty() {
		shots = req.Numbers.Apply(shots)
		if len(shots) == 0 {
			s.closeProgress(req)
			return nil, fmt.Errorf("product %s has no screenshots matching the requested numbers", req.Product)
		}
	}

	requested := make([]locale.Locale, 0, len(req.Targets))
	for _, raw := range req.Targets {
		requested = append(requested, locale.Locale(raw))
	}

	runPlan := plan.Build(prod.Locales, primary, requested)
	for _, l := range runPlan.Invalid {
		log.Warn("requested locale %s is not in product %s", l, req.Product)
	}
	for _, l := range runPlan.Skipped {
		log.Warn("locale %s is not supported by the translation backend, skipping", l)
	}
	s.checkLocaleContent(prod)

	tasks := translate.BuildTasks(
		s.cfg.Pipeline.ProductsDir, req.Product, shots, primary, runPlan, req.SkipExisting)

	ret := &Result{
		RunID:   fmt.Sprintf("%s-%d", req.Product, started.UnixNano()),
		Product: req.Product,
		Primary: string(primary),
		Plan:    runPlan,
		Tasks:   tasks,
		DryRun:  req.DryRun,
	}

	if req.DryRun {
		s.closeProgress(req)
		return ret, nil
	}

	bg, err := backgroundColor(prod.Config.BackgroundColor)
	if err != nil {
		s.closeProgress(req)
		return nil, fmt.Errorf("product %s: %w", req.Product, err)
	}

	opts := translate.Options{
		Cooldown:        s.cfg.Pipeline.Cooldown,
		RawStaging:      req.RawStaging,
		BackgroundColor: bg,
		PreserveWords:   append(append([]string{}, prod.Config.PreserveWords...), req.PreserveWords...),
		Progress:        req.Progress,
	}
	ret.Summary = translate.NewOrchestrator(s.backend).Execute(ctx, tasks, opts)

	if err := s.record(ctx, ret, started); err != nil {
		log.Error("record run %s: %v", ret.RunID, err)
	}
	return ret, nil
}

// RunAll runs the pipeline over every product under the products dir.
// Per-product failures are logged, not propagated, so one broken
// product does not starve the rest.
func (s *Service) RunAll(ctx context.Context, skipExisting bool) {
	slugs, err := product.List(s.cfg.Pipeline.ProductsDir)
	if err != nil {
		log.Error("list products: %v", err)
		return
	}
	for _, slug := range slugs {
		if ctx.Err() != nil {
			return
		}
		result, err := s.Run(ctx, Request{Product: slug, SkipExisting: skipExisting})
		if err != nil {
			log.Error("run product %s: %v", slug, err)
			continue
		}
		log.Info("product %s: %d ok, %d failed, %d files written",
			slug, result.Summary.Successful, result.Summary.Failed, result.Summary.Written)
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the full-catalog run on the cron schedule from
// config. Overlapping triggers collapse into the in-flight run.
func (s *Service) Schedule(ctx context.Context, c *cron.Cron) error {
	log.Info("scheduling watch runs: %s", s.cfg.Pipeline.CronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			s.RunAll(ctx, true)
			return nil, nil
		})
	}
	_, err := c.AddFunc(s.cfg.Pipeline.CronExpr, runFunc)
	return err
}

// checkLocaleContent warns when a locale file's text does not read as
// its declared language. Warnings only, the run proceeds.
func (s *Service) checkLocaleContent(prod *product.Product) {
	for _, l := range prod.Locales {
		entry := prod.Entries[l]
		text := entry.Title + " " + entry.Subtitle + " " + entry.Description
		if ok, detected := aso.CheckContent(l, text); !ok {
			log.Warn("product %s locale %s reads as %s, check %s",
				prod.Slug, l, detected, entry.Path)
		}
	}
}

func (s *Service) record(ctx context.Context, result *Result, started time.Time) error {
	if s.store == nil {
		return nil
	}

	targets := make([]string, 0, len(result.Plan.Targets))
	for _, g := range result.Plan.Targets {
		targets = append(targets, string(g))
	}
	skipped := make([]string, 0, len(result.Plan.Skipped))
	for _, l := range result.Plan.Skipped {
		skipped = append(skipped, string(l))
	}
	failures := make([]persistence.RunFailure, 0, len(result.Summary.Errors))
	for _, e := range result.Summary.Errors {
		failures = append(failures, persistence.RunFailure{
			RunID:  result.RunID,
			Path:   e.Path,
			Reason: e.Err,
		})
	}

	return s.store.SaveRun(ctx, persistence.RunRecord{
		ID:         result.RunID,
		Product:    result.Product,
		Primary:    result.Primary,
		Targets:    targets,
		Skipped:    skipped,
		Successful: result.Summary.Successful,
		Failed:     result.Summary.Failed,
		Written:    result.Summary.Written,
		DryRun:     result.DryRun,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}, failures)
}

// closeProgress releases a caller's progress channel on paths where the
// orchestrator never runs.
func (s *Service) closeProgress(req Request) {
	if req.Progress != nil {
		close(req.Progress)
	}
}

func backgroundColor(hex string) (*color.NRGBA, error) {
	if hex == "" {
		return nil, nil
	}
	c, err := imageproc.ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
