package cli

import (
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/gemini"
	"github.com/appglot/shotloc/internal/service"
	"github.com/appglot/shotloc/pkg/log"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the pipeline for all products on a cron schedule",
		Long: `Run the translation pipeline over every product on the CRON_EXPR
schedule, skipping outputs that already exist. Overlapping triggers
collapse into the in-flight run. Blocks until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			store := openStore()
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := service.New(cfg, client, store)
			c := cron.New()
			if err := svc.Schedule(ctx, c); err != nil {
				return err
			}
			c.Start()
			defer c.Stop()

			log.Info("watching %s products on schedule %q", cfg.Pipeline.ProductsDir, cfg.Pipeline.CronExpr)
			<-ctx.Done()
			log.Info("shutting down")
			return nil
		},
	}

	return cmd
}
