// Package item provides the "donow item" command group: creating,
// listing, showing, and finishing items, grounded on the teacher's
// adapter/cli/task command group.
package item

import (
	"github.com/spf13/cobra"
)

// Cmd is the item command group.
var Cmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items",
	Long:  `Create, list, show, and finish items.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(finishCmd)
}
