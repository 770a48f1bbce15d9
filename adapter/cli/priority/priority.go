// Package priority provides the "donow priority" command group for
// declaring in-the-moment priority overrides, grounded on the
// teacher's adapter/cli/priority command group.
package priority

import (
	"github.com/spf13/cobra"
)

// Cmd is the priority command group.
var Cmd = &cobra.Command{
	Use:   "priority",
	Short: "Declare in-the-moment priority overrides",
	Long:  `Override the ranked do-now list's top pick for a bounded window.`,
}

func init() {
	Cmd.AddCommand(declareCmd)
}
