package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/timeutil"
)

// CalendarOptions
type CalendarOptions struct {
	Month string
	Date  string
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show, example: --month=2024-01. Defaults to the month of --date.`)
	AddDateArg(cmd, o)
}

func AddDateArg(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		`Reference date, example: --date=2024-01-10 or --date=tomorrow. Defaults to today.`)
}

// GetDate resolves --date against now.
func (o *CalendarOptions) GetDate(now time.Time) (timeutil.DateKey, error) {
	if o.Date == "" {
		return timeutil.KeyFor(now), nil
	}
	return timeutil.ResolveDate(o.Date, now)
}

// GetMonth returns the first day of the month to show, falling back to the
// month of date.
func (o *CalendarOptions) GetMonth(date timeutil.DateKey) (timeutil.DateKey, error) {
	if o.Month == "" {
		first, _ := timeutil.MonthBounds(date)
		return first, nil
	}
	return timeutil.ParseMonth(o.Month)
}
