package item

import (
	"fmt"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/spf13/cobra"
)

var newEventSummary string

var createCmd = &cobra.Command{
	Use:   "create [summary]",
	Short: "Create a new item",
	Long: `Create a new item, starting Undeclared until typed by a later command.

Examples:
  donow item create "Write quarterly report"
  donow item create "File insurance claim" --after-new-event "insurance deadline confirmed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.NewItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		newItemCmd := commands.NewItemCommand{
			UserID:  app.CurrentUserID,
			Summary: args[0],
		}
		if newEventSummary != "" {
			newItemCmd.NewEvent = &commands.NewEventSpec{Summary: newEventSummary}
		}

		ctx := cmd.Context()
		result, err := app.NewItemHandler.Handle(ctx, newItemCmd)
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		fmt.Printf("Item created: %s\n", result.ItemID)
		if result.EventID != nil {
			fmt.Printf("  waiting on new event: %s\n", *result.EventID)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&newEventSummary, "after-new-event", "", "create this item dependent on a not-yet-existing event with this summary")
}
