// Package cli wires the shotloc commands.
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/config"
	"github.com/appglot/shotloc/pkg/log"
)

var (
	cfg *config.Config

	flagProductsDir string
	flagLogLevel    string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shotloc",
		Short: "Localize app store screenshots across languages",
		Long: `shotloc localizes App Store screenshots.

Scans a product's screenshots in its primary locale, plans which
locales need translated variants, calls an image translation backend
once per translation group, fans the result out to every locale in
the group, and normalizes dimensions to the store's canonical sizes.

Commands:
  translate   Translate a product's screenshots into its other locales
  resize      Promote raw staged output and fix screenshot dimensions
  plan        Preview the locale plan without translating
  locales     Show the locale registry and store code mappings
  runs        Show recorded run history
  watch       Re-run the pipeline for all products on a cron schedule`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts := make([]config.Option, 0, 2)
			if flagProductsDir != "" {
				opts = append(opts, func(c *config.Config) { c.Pipeline.ProductsDir = flagProductsDir })
			}
			if flagLogLevel != "" {
				opts = append(opts, func(c *config.Config) { c.LogLevel = flagLogLevel })
			}
			cfg = config.NewFromEnv(opts...)
			log.Init(cfg.LogLevel)
		},
	}

	root.PersistentFlags().StringVar(&flagProductsDir, "products-dir", "", "Products root directory (overrides PRODUCTS_DIR)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newTranslateCmd(),
		newResizeCmd(),
		newPlanCmd(),
		newLocalesCmd(),
		newRunsCmd(),
		newWatchCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	defer log.Sync()
	if err := newRootCmd().Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}
