package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/commands/options"
	"tableflip.dev/shelflife/pkg/printers"
)

func addReport(topLevel *cobra.Command) {
	so := &options.SpanOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List what expires soon, grouped by location",
		Long: `Report lists items expiring between today and the end of the span,
grouped by location.

Examples:
  shelflife report
  shelflife report --within 3d
  shelflife report --within 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, _, err := so.GetSpan()
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			res, err := e.svc.Report(context.Background(), e.aggregation(time.Now()), days)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			if oo.JSON {
				return oo.HandleError(pp.JSON(res))
			}
			pp.Report(res)
			return nil
		},
	}

	options.AddSpanArgs(cmd, so)
	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
