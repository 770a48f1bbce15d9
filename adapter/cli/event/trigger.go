package event

import (
	"fmt"
	"time"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger [event-id]",
	Short: "Mark an event as triggered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EventHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		ctx := cmd.Context()
		triggerCmd := commands.TriggerEventCommand{
			UserID:  app.CurrentUserID,
			EventID: eventID,
			When:    time.Now().UTC(),
		}
		if err := app.EventHandler.HandleTrigger(ctx, triggerCmd); err != nil {
			return fmt.Errorf("failed to trigger event: %w", err)
		}

		fmt.Printf("Event triggered: %s\n", eventID)
		return nil
	},
}
