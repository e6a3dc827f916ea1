package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/service"
)

func newResizeCmd() *cobra.Command {
	var (
		locales       []string
		devices       []string
		numbers       []int
		phoneNumbers  []int
		tabletNumbers []int
	)

	cmd := &cobra.Command{
		Use:   "resize <product>",
		Short: "Promote raw staged output and fix screenshot dimensions",
		Long: `Resize a product's translated screenshots. Staged files under raw/
are resized to the canonical device size and moved into place; final
files whose dimensions drifted from the primary screenshots are fixed
in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			devs, err := parseDevices(devices)
			if err != nil {
				return err
			}

			svc := service.New(cfg, nil, nil)
			result, err := svc.Normalize(cmd.Context(), service.NormalizeRequest{
				Product: args[0],
				Locales: locales,
				Devices: devs,
				Numbers: buildNumberFilter(numbers, phoneNumbers, tabletNumbers),
			})
			if err != nil {
				return err
			}

			color.Green("%d promoted from raw/, %d checked, %d resized, %d skipped",
				result.Promoted, result.Batch.Checked, result.Batch.Resized, result.Batch.Skipped)
			if result.Batch.ErrorCount > 0 {
				color.Red("%d failed", result.Batch.ErrorCount)
				for _, e := range result.Batch.Errors {
					color.Red("  %s: %s", e.Path, e.Err)
				}
				return fmt.Errorf("%d file(s) failed", result.Batch.ErrorCount)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&locales, "locales", nil, "Only process these locales")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "Only process these device types (phone, tablet)")
	cmd.Flags().IntSliceVar(&numbers, "numbers", nil, "Only process these screenshot numbers")
	cmd.Flags().IntSliceVar(&phoneNumbers, "phone-numbers", nil, "Screenshot numbers for phone, overrides --numbers")
	cmd.Flags().IntSliceVar(&tabletNumbers, "tablet-numbers", nil, "Screenshot numbers for tablet, overrides --numbers")

	return cmd
}
