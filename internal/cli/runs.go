package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var (
		productFilter string
		limit         int
		showFailures  string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recorded run history",
		Long: `List past translation runs, newest first. With --failures, show the
per-file failures recorded for one run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			if store == nil {
				return fmt.Errorf("run history unavailable")
			}
			defer store.Close()

			ctx := cmd.Context()
			if showFailures != "" {
				failures, err := store.LoadFailures(ctx, showFailures)
				if err != nil {
					return err
				}
				if len(failures) == 0 {
					fmt.Printf("no failures recorded for run %s\n", showFailures)
					return nil
				}
				for _, f := range failures {
					color.Red("%s: %s", f.Path, f.Reason)
				}
				return nil
			}

			runs, err := store.ListRuns(ctx, productFilter, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}
			for _, run := range runs {
				mode := ""
				if run.DryRun {
					mode = " (dry run)"
				}
				fmt.Printf("%s  %s  %s%s\n", run.StartedAt.Format(time.RFC3339), run.Product, run.ID, mode)
				fmt.Printf("  targets: %s\n", strings.Join(run.Targets, ", "))
				line := fmt.Sprintf("  %d ok, %d failed, %d files written", run.Successful, run.Failed, run.Written)
				if run.Failed > 0 {
					color.Red("%s", line)
				} else {
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&productFilter, "product", "", "Only show runs of this product")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&showFailures, "failures", "", "Show the failures of one run by id")

	return cmd
}
