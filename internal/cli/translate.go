package cli

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/gemini"
	"github.com/appglot/shotloc/internal/persistence"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/internal/service"
	"github.com/appglot/shotloc/internal/translate"
	"github.com/appglot/shotloc/pkg/log"
)

// maxFailureDisplay bounds the failure sample printed after a run; the
// full count is always shown.
const maxFailureDisplay = 10

func newTranslateCmd() *cobra.Command {
	var (
		locales       []string
		devices       []string
		numbers       []int
		phoneNumbers  []int
		tabletNumbers []int
		skipExisting  bool
		dryRun        bool
		rawStaging    bool
		preserve      []string
	)

	cmd := &cobra.Command{
		Use:   "translate <product>",
		Short: "Translate a product's screenshots into its other locales",
		Long: `Translate the primary-locale screenshots of one product into every
other locale the product ships, one backend call per translation
group. Existing outputs are skipped by default, so reruns only fill
gaps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			devs, err := parseDevices(devices)
			if err != nil {
				return err
			}

			req := service.Request{
				Product:       args[0],
				Targets:       locales,
				Devices:       devs,
				Numbers:       buildNumberFilter(numbers, phoneNumbers, tabletNumbers),
				SkipExisting:  skipExisting,
				DryRun:        dryRun,
				RawStaging:    rawStaging,
				PreserveWords: preserve,
			}
			return runTranslate(cmd.Context(), req)
		},
	}

	cmd.Flags().StringSliceVar(&locales, "locales", nil, "Only translate into these locales")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "Only translate these device types (phone, tablet)")
	cmd.Flags().IntSliceVar(&numbers, "numbers", nil, "Only translate these screenshot numbers")
	cmd.Flags().IntSliceVar(&phoneNumbers, "phone-numbers", nil, "Screenshot numbers for phone, overrides --numbers")
	cmd.Flags().IntSliceVar(&tabletNumbers, "tablet-numbers", nil, "Screenshot numbers for tablet, overrides --numbers")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", true, "Skip outputs that already exist")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the worklist without translating")
	cmd.Flags().BoolVar(&rawStaging, "raw", false, "Stage translated output under raw/ instead of resizing in place")
	cmd.Flags().StringSliceVar(&preserve, "preserve", nil, "Extra words the backend must not translate")

	return cmd
}

func runTranslate(parent context.Context, req service.Request) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend translate.Backend
	if !req.DryRun {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		client, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			APIBase: cfg.Gemini.APIURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		})
		if err != nil {
			return err
		}
		backend = client
	}

	store := openStore()
	defer store.Close()

	svc := service.New(cfg, backend, store)

	var wg sync.WaitGroup
	if !req.DryRun {
		progress := make(chan translate.Event, 16)
		req.Progress = progress
		wg.Add(1)
		go func() {
			defer wg.Done()
			renderProgress(progress)
		}()
	}

	result, err := svc.Run(ctx, req)
	wg.Wait()
	if err != nil {
		return err
	}

	printPlan(result)
	if req.DryRun {
		printWorklist(result.Tasks)
		return nil
	}
	printSummary(result.Summary)
	if result.Summary.Failed > 0 {
		return fmt.Errorf("%d task(s) failed", result.Summary.Failed)
	}
	return nil
}

// openStore opens run history, or returns nil when the DB cannot be
// opened so translation still works without history.
func openStore() *persistence.SQLiteStore {
	store, err := persistence.NewSQLiteStore(cfg.Pipeline.DBPath)
	if err != nil {
		log.Warn("run history disabled: %v", err)
		return nil
	}
	return store
}

func renderProgress(progress <-chan translate.Event) {
	var bar *pterm.ProgressbarPrinter
	for ev := range progress {
		if bar == nil {
			bar, _ = pterm.DefaultProgressbar.WithTotal(ev.Total).WithTitle("translating").Start()
		}
		switch ev.Status {
		case translate.StatusTranslating:
			bar.UpdateTitle(fmt.Sprintf("%s %s/%s", ev.Target, ev.Device, ev.Filename))
		case translate.StatusCompleted, translate.StatusFailed:
			bar.Increment()
		}
	}
	if bar != nil {
		_, _ = bar.Stop()
	}
}

func printPlan(result *service.Result) {
	fmt.Printf("product %s, source locale %s\n", result.Product, result.Primary)
	for _, g := range result.Plan.Targets {
		members := result.Plan.LocaleMapping[g]
		fmt.Printf("  %s -> %v\n", g, members)
	}
	if len(result.Plan.Skipped) > 0 {
		color.Yellow("  skipped (unsupported): %v", result.Plan.Skipped)
	}
	if len(result.Plan.Invalid) > 0 {
		color.Yellow("  not in product: %v", result.Plan.Invalid)
	}
}

func printWorklist(tasks []translate.Task) {
	for _, task := range tasks {
		fmt.Printf("  %s/%s %s -> %d file(s)\n", task.Target, task.Device, task.Filename, len(task.OutputPaths))
	}
	fmt.Printf("%d task(s), nothing written (dry run)\n", len(tasks))
}

func printSummary(s translate.Summary) {
	color.Green("%d ok, %d files written", s.Successful, s.Written)
	if s.Failed == 0 {
		return
	}
	color.Red("%d failed", s.Failed)
	for i, e := range s.Errors {
		if i == maxFailureDisplay {
			color.Red("  ... and %d more", len(s.Errors)-maxFailureDisplay)
			break
		}
		color.Red("  %s: %s", e.Path, e.Err)
	}
}

// buildNumberFilter assembles the screenshot-number filter from the
// flat and per-device flags.
func buildNumberFilter(all, phone, tablet []int) screenshot.NumberFilter {
	f := screenshot.NumberFilter{All: all}
	if len(phone) > 0 || len(tablet) > 0 {
		f.ByDevice = make(map[screenshot.DeviceType][]int)
		if len(phone) > 0 {
			f.ByDevice[screenshot.Phone] = phone
		}
		if len(tablet) > 0 {
			f.ByDevice[screenshot.Tablet] = tablet
		}
	}
	return f
}

func parseDevices(names []string) ([]screenshot.DeviceType, error) {
	ret := make([]screenshot.DeviceType, 0, len(names))
	for _, name := range names {
		d, err := screenshot.ParseDeviceType(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, d)
	}
	return ret, nil
}
