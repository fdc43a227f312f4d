package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/commands/options"
	"tableflip.dev/shelflife/pkg/printers"
	"tableflip.dev/shelflife/pkg/window"
)

// listing is the JSON shape of one page of items.
type listing struct {
	Start       int               `json:"start"`
	End         int               `json:"end"`
	Total       int               `json:"total"`
	Virtualized bool              `json:"virtualized"`
	Stale       bool              `json:"stale,omitempty"`
	Entries     []aggregate.Entry `json:"entries"`
}

func addList(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items, soonest expiry first",
		Long: base80(`List prints every item in expiry order, undated items last. Once
the inventory is larger than the configured virtualization threshold the list
is paged; use --page and --window to move through it.`),
		Example: `
shelflife list
shelflife list --page=2 --window=20
shelflife list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := wo.Validate(); err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			cfg := e.aggregation(time.Now())
			pageSize := e.cfg.PageSize
			if wo.Window > 0 {
				pageSize = wo.Window
			}
			provider, err := window.NewProvider(window.OptionsFrom(cfg, pageSize))
			if err != nil {
				return oo.HandleError(err)
			}
			items, err := e.svc.Items(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			ordered := window.Order(items)
			view := provider.Window(ordered, window.Range{Offset: (wo.Page - 1) * pageSize, Limit: pageSize})
			res := listing{
				Start:       view.Start,
				End:         view.End,
				Total:       view.Total,
				Virtualized: view.Virtualized,
				Stale:       view.Stale,
				Entries:     aggregate.Classified(view.Items, cfg),
			}

			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			if oo.JSON {
				return oo.HandleError(pp.JSON(res))
			}
			pp.TitleWithCount("Items", res.Total)
			pp.Items(res.Entries...)
			if res.Virtualized {
				pages := (res.Total + pageSize - 1) / pageSize
				page := res.Start/pageSize + 1
				pp.Title(fmt.Sprintf("Page %d of %d, items %d-%d", page, pages, res.Start+1, res.End))
			}
			return nil
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}
