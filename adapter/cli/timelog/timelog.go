// Package timelog provides the "donow timelog" command group for
// appending immutable work-log entries, grounded on the teacher's
// adapter/cli/task command group.
package timelog

import (
	"github.com/spf13/cobra"
)

// Cmd is the timelog command group.
var Cmd = &cobra.Command{
	Use:   "timelog",
	Short: "Record time spent working",
	Long:  `Append an immutable record of time spent on one or more items.`,
}

func init() {
	Cmd.AddCommand(recordCmd)
}
