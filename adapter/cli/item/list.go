package item

import (
	"fmt"
	"strings"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/spf13/cobra"
)

var (
	showFinished bool
	filterType   string
	sortBy       string
	sortOrder    string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List items",
	Aliases: []string{"ls"},
	Long: `List items with optional type filtering and sorting.

Examples:
  donow item list                       # Unfinished items
  donow item list --all                 # Include finished items
  donow item list --type Goal           # Only goals
  donow item list --sort created --order desc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListItemsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListItemsQuery{
			UserID:          app.CurrentUserID,
			IncludeFinished: showFinished,
			SortBy:          sortBy,
			SortOrder:       sortOrder,
		}
		if filterType != "" {
			t, err := parseItemType(filterType)
			if err != nil {
				return err
			}
			query.Type = &t
		}

		ctx := cmd.Context()
		items, err := app.ListItemsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No items found.")
			return nil
		}

		fmt.Printf("Items (%d):\n", len(items))
		fmt.Println(strings.Repeat("-", 60))
		for _, it := range items {
			statusIcon := "[ ]"
			if it.Finished != nil {
				statusIcon = "[x]"
			}
			fmt.Printf("%s %s (%s)\n", statusIcon, it.Summary, it.Type)
			fmt.Printf("   ID: %s\n", it.ID.String()[:8])
			if len(it.Dependencies) > 0 {
				fmt.Printf("   Dependencies: %d\n", len(it.Dependencies))
			}
			fmt.Println()
		}
		return nil
	},
}

func parseItemType(s string) (domain.ItemType, error) {
	switch strings.ToLower(s) {
	case "undeclared":
		return domain.Undeclared, nil
	case "action":
		return domain.ActionType, nil
	case "goal":
		return domain.GoalType, nil
	case "motivation":
		return domain.MotivationType, nil
	case "ideaorthought", "idea":
		return domain.IdeaOrThought, nil
	case "personorgroup", "person", "group":
		return domain.PersonOrGroup, nil
	default:
		return 0, fmt.Errorf("unknown item type %q (want Undeclared, Action, Goal, Motivation, IdeaOrThought, PersonOrGroup)", s)
	}
}

func init() {
	listCmd.Flags().BoolVarP(&showFinished, "all", "a", false, "include finished items")
	listCmd.Flags().StringVarP(&filterType, "type", "t", "", "filter by item type")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort by field (summary, created)")
	listCmd.Flags().StringVar(&sortOrder, "order", "asc", "sort order (asc, desc)")
}
