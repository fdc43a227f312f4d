package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/logging"
	"tableflip.dev/shelflife/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
shelflife ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			// The program owns the terminal; only log when asked to.
			log := logging.Nop()
			if lo.Level != "" {
				log = e.log
			}
			i := ui.UI{
				Service:  e.svc,
				Config:   e.cfg.Aggregation(),
				PageSize: e.cfg.PageSize,
				Logger:   log,
			}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
