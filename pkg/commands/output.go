package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/commands/options"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/printers"
)

func addOutputArg(cmd *cobra.Command) {
	base.AddOutputArg(cmd, oo)
}

func base80(text string) string {
	return base.Wrap80(text)
}

// aggregation returns the configured aggregation options anchored at now.
func (e *env) aggregation(now time.Time) aggregate.Config {
	cfg := e.cfg.Aggregation()
	cfg.ReferenceDate = now
	return cfg
}

// printItem shows a single item the way list does, or as JSON.
func printItem(e *env, ido *options.IDOptions, it item.Item) error {
	pp := &printers.PrettyPrint{ShowID: ido.ShowID}
	if oo.JSON {
		return pp.JSON(it)
	}
	entries := aggregate.Classified([]item.Item{it}, e.aggregation(time.Now()))
	pp.Items(entries...)
	return nil
}
