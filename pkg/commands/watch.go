package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/printers"
	"tableflip.dev/shelflife/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the calendar and legend whenever the store changes",
		Example: `
shelflife watch
shelflife watch --metrics=:9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.Watch{
				Service:     e.svc,
				Config:      e.cfg.Aggregation(),
				PageSize:    e.cfg.PageSize,
				Logger:      e.log,
				Printer:     &printers.PrettyPrint{},
				MetricsAddr: metricsAddr,
			}
			return w.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "Serve Prometheus metrics on this address, example: --metrics=:9090.")
	topLevel.AddCommand(cmd)
}
