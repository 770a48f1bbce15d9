// Package donow provides the "donow list" command: the headline
// feature, running C1-C7 and printing the ranked do-now list, grounded
// on the teacher's adapter/cli/dashboard.go display style.
package donow

import (
	"fmt"
	"strings"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/spf13/cobra"
)

// Cmd prints the current ranked do-now list.
var Cmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the ranked do-now list",
	Aliases: []string{"now", "do-now"},
	Long: `Run the full readiness/urgency/review/ranking pipeline and print
what to do right now, most urgent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetDoNowListHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		actions, err := app.GetDoNowListHandler.Handle(ctx, queries.GetDoNowListQuery{UserID: app.CurrentUserID})
		if err != nil {
			return fmt.Errorf("failed to compute do-now list: %w", err)
		}

		if len(actions) == 0 {
			fmt.Println("Nothing to do right now.")
			return nil
		}

		fmt.Println()
		fmt.Println("  DO NOW")
		fmt.Println(strings.Repeat("=", 60))
		for i, a := range actions {
			printAction(i+1, a, 0)
		}
		fmt.Println()
		return nil
	},
}

func printAction(rank int, a queries.ActionDTO, depth int) {
	indent := strings.Repeat("  ", depth)
	if a.Kind == "PickWhatShouldBeDoneFirst" {
		fmt.Printf("%s%d. Pick what to do first among:\n", indent, rank)
		for _, c := range a.Choices {
			printAction(rank, c, depth+1)
		}
		return
	}
	fmt.Printf("%s%d. %s  item=%s\n", indent, rank, a.Kind, a.ItemID.String()[:8])
}
