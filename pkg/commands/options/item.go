package options

import (
	"github.com/spf13/cobra"
)

// ItemOptions
type ItemOptions struct {
	Quantity float64
	Unit     string
	Location string
	Category string
	Expires  string
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().Float64VarP(&o.Quantity, "qty", "q", 1,
		"How many of the item there are.")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", "",
		"Unit of the quantity, example: --unit=kg.")
	cmd.Flags().StringVarP(&o.Location, "location", "l", "fridge",
		"Where the item is stored: fridge or shelf.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category used for the legend breakdown.")
	AddExpiresArg(cmd, o)
}

func AddExpiresArg(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringVarP(&o.Expires, "expires", "e", "",
		`Expiry date, example: --expires=2024-01-31, --expires=tomorrow or --expires=3d.`)
}
