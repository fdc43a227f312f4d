package options

import (
	"fmt"

	"github.com/spf13/cobra"
)

// WindowOptions
type WindowOptions struct {
	Window int
	Page   int
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().IntVarP(&o.Window, "window", "w", 0,
		"Items per page once the list is large enough to page. Defaults to the configured page size.")
	cmd.Flags().IntVarP(&o.Page, "page", "p", 1,
		"Page to show, starting at 1.")
}

// Validate rejects pages and windows that can never be shown.
func (o *WindowOptions) Validate() error {
	if o.Window < 0 {
		return fmt.Errorf("--window must not be negative, got %d", o.Window)
	}
	if o.Page < 1 {
		return fmt.Errorf("--page starts at 1, got %d", o.Page)
	}
	return nil
}
