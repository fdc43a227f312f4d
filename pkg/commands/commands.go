package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shelflife/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "shelflife",
		Short: base.Wrap80("Track what is in the fridge and on the shelf, and when it expires."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addExpire(topLevel)
	addList(topLevel)
	addCalendar(topLevel)
	addLegend(topLevel)
	addReport(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
