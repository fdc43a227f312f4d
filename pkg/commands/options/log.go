package options

import (
	"github.com/spf13/cobra"
)

// LogOptions overrides the configured log settings for one invocation.
type LogOptions struct {
	Level  string
	Format string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level (debug, info, warn, error); overrides the config file.")
	cmd.PersistentFlags().StringVar(&o.Format, "log-format", "",
		"Log format (console or json); overrides the config file.")
}
