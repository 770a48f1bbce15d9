// Package event provides the "donow event" command group: trigger and
// untrigger, grounded on the teacher's adapter/cli/task command group.
package event

import (
	"github.com/spf13/cobra"
)

// Cmd is the event command group.
var Cmd = &cobra.Command{
	Use:   "event",
	Short: "Trigger and untrigger events",
	Long:  `Flip an event's triggered flag, unblocking or reblocking any item that waits on it.`,
}

func init() {
	Cmd.AddCommand(triggerCmd)
	Cmd.AddCommand(untriggerCmd)
}
