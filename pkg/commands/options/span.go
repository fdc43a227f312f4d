package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/timeutil"
)

// SpanOptions
type SpanOptions struct {
	Within string
}

func AddSpanArgs(cmd *cobra.Command, o *SpanOptions) {
	cmd.Flags().StringVar(&o.Within, "within", timeutil.DefaultSpan,
		"How far ahead to look, example: --within=3d or --within=1w2d.")
}

// GetSpan returns the span in days and its normalized label.
func (o *SpanOptions) GetSpan() (int, string, error) {
	return timeutil.ParseSpan(o.Within)
}
