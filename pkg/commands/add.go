package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/commands/options"
	"tableflip.dev/shelflife/pkg/item"
)

func addAdd(topLevel *cobra.Command) {
	io := &options.ItemOptions{}
	ido := &options.IDOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item to the fridge or the shelf",
		Example: `
shelflife add milk --expires=3d
shelflife add rice --qty=2 --unit=kg --location=shelf --category=grains
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an item name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			it, err := e.svc.Add(context.Background(), app.AddRequest{
				Name:     name,
				Quantity: io.Quantity,
				Unit:     io.Unit,
				Location: io.Location,
				Category: io.Category,
				Expires:  io.Expires,
			})
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printItem(e, ido, it))
		},
	}

	options.AddItemArgs(cmd, io)
	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "eat"},
		Short:   "Remove an item",
		Example: `
shelflife rm 1f2e3d4c
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: itemCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			it, err := e.svc.Remove(context.Background(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printItem(e, ido, it))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "mv ID LOCATION",
		Short: "Move an item between the fridge and the shelf",
		Example: `
shelflife mv 1f2e3d4c shelf
`,
		Args:      cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return locationNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return itemCompletions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			it, err := e.svc.Move(context.Background(), args[0], args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printItem(e, ido, it))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}

func addExpire(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "expire ID [DATE]",
		Short: "Set or clear the expiry date of an item",
		Long: base80(`Expire sets the expiry date of an item. DATE accepts YYYY-MM-DD,
today, tomorrow, yesterday or an offset such as 3d or 1w. Leaving DATE out
clears the expiry date.`),
		Example: `
shelflife expire 1f2e3d4c 2024-01-31
shelflife expire 1f2e3d4c tomorrow
shelflife expire 1f2e3d4c
`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: itemCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			date := ""
			if len(args) > 1 {
				date = args[1]
			}
			it, err := e.svc.SetExpiry(context.Background(), args[0], date)
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printItem(e, ido, it))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	addOutputArg(cmd)
	topLevel.AddCommand(cmd)
}

func locationNames() []string {
	locs := item.AllLocations()
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, string(l))
	}
	return names
}
