package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/commands/options"
	"tableflip.dev/shelflife/pkg/printers"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}
	ido := &options.IDOptions{}
	var agenda bool

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of expiry dates",
		Example: `
shelflife calendar
shelflife calendar --month=2024-02
shelflife calendar --date=tomorrow --agenda
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			date, err := co.GetDate(now)
			if err != nil {
				return oo.HandleError(err)
			}
			month, err := co.GetMonth(date)
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			cfg := e.aggregation(now)
			cfg.Range = aggregate.MonthRange(month)
			cfg.Selected = date
			snap, err := e.svc.Snapshot(context.Background(), cfg)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			if oo.JSON {
				return oo.HandleError(pp.JSON(snap))
			}
			pp.Calendar(month, snap.Aggregate)
			pp.NewLine()
			if agenda {
				pp.Agenda(snap.Aggregate)
				return nil
			}
			pp.TitleWithCount(date.String(), len(snap.Aggregate.ItemsOn(date)))
			pp.Items(snap.Aggregate.ItemsOn(date)...)
			return nil
		},
	}

	options.AddCalendarArgs(cmd, co)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&agenda, "agenda", "a", false, "List every dated item of the month under the calendar.")
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}

func addLegend(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Summarize items by urgency, location and category",
		Example: `
shelflife legend
shelflife legend --month=2024-02 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			cfg := e.aggregation(now)
			if co.Month != "" {
				month, err := co.GetMonth("")
				if err != nil {
					return oo.HandleError(err)
				}
				cfg.Range = aggregate.MonthRange(month)
			}
			snap, err := e.svc.Snapshot(context.Background(), cfg)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := &printers.PrettyPrint{}
			if oo.JSON {
				return oo.HandleError(pp.JSON(snap.Counts))
			}
			pp.Legend(snap.Counts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&co.Month, "month", "m", "",
		`Only count items dated in this month, example: --month=2024-01. Defaults to every item.`)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
