package item

import (
	"fmt"
	"time"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var finishCmd = &cobra.Command{
	Use:     "finish [item-id]",
	Short:   "Mark an item finished",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FinishItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		ctx := cmd.Context()
		finishCmd := commands.FinishItemCommand{
			UserID: app.CurrentUserID,
			ItemID: itemID,
			When:   time.Now().UTC(),
		}
		if err := app.FinishItemHandler.Handle(ctx, finishCmd); err != nil {
			return fmt.Errorf("failed to finish item: %w", err)
		}

		fmt.Printf("Item finished: %s\n", itemID)
		return nil
	},
}
