package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/plan"
	"github.com/appglot/shotloc/internal/product"
)

func newPlanCmd() *cobra.Command {
	var locales []string

	cmd := &cobra.Command{
		Use:   "plan <product>",
		Short: "Preview the locale plan without translating",
		Long: `Show which translation groups a run would call the backend for,
which locales share each group's output, and which locales would be
skipped. Reads only the product's locale files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prod, err := product.Load(cfg.Pipeline.ProductsDir, args[0])
			if err != nil {
				return err
			}
			if len(prod.Locales) == 0 {
				return fmt.Errorf("product %s has no locales", args[0])
			}

			requested := make([]locale.Locale, 0, len(locales))
			for _, raw := range locales {
				requested = append(requested, locale.Locale(raw))
			}
			p := plan.Build(prod.Locales, prod.Config.DefaultLocale, requested)

			fmt.Printf("product %s, source locale %s, %d locale(s)\n",
				prod.Slug, prod.Config.DefaultLocale, len(prod.Locales))
			fmt.Printf("%d backend call(s) per screenshot:\n", len(p.Targets))
			for _, g := range p.Targets {
				fmt.Printf("  %-8s %s -> %v\n", g, locale.GroupDisplayName(g), p.LocaleMapping[g])
			}
			if len(p.Grouped) > 0 {
				fmt.Printf("shared output (no own call): %v\n", p.Grouped)
			}
			if len(p.Skipped) > 0 {
				color.Yellow("skipped (backend unsupported): %v", p.Skipped)
			}
			if len(p.Invalid) > 0 {
				color.Yellow("not in product: %v", p.Invalid)
			}
			if len(prod.Unknown) > 0 {
				color.Yellow("unknown locale files: %v", prod.Unknown)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&locales, "locales", nil, "Only plan these locales")

	return cmd
}
