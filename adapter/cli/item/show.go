package item

import (
	"fmt"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [item-id]",
	Short: "Show a single item's full detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetItemHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		ctx := cmd.Context()
		dto, err := app.GetItemHandler.Handle(ctx, queries.GetItemQuery{UserID: app.CurrentUserID, ItemID: itemID})
		if err != nil {
			return fmt.Errorf("failed to get item: %w", err)
		}

		fmt.Printf("Summary:        %s\n", dto.Summary)
		fmt.Printf("ID:             %s\n", dto.ID)
		fmt.Printf("Type:           %s\n", dto.Type)
		fmt.Printf("Created:        %s\n", dto.Created.Format("2006-01-02 15:04"))
		if dto.Finished != nil {
			fmt.Printf("Finished:       %s\n", dto.Finished.Format("2006-01-02 15:04"))
		}
		fmt.Printf("Responsibility: %d\n", dto.Responsibility)
		fmt.Printf("Children:       %d\n", len(dto.Children))
		fmt.Printf("Dependencies:   %d\n", len(dto.Dependencies))
		if dto.NotesLocation != nil {
			fmt.Printf("Notes:          %s\n", *dto.NotesLocation)
		}
		if dto.LastReviewed != nil {
			fmt.Printf("Last reviewed:  %s\n", dto.LastReviewed.Format("2006-01-02 15:04"))
		}
		return nil
	},
}
