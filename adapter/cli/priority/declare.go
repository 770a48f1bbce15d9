package priority

import (
	"fmt"
	"strings"
	"time"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	kindFlag  string
	untilFlag string
)

var declareCmd = &cobra.Command{
	Use:   "declare [item-id]",
	Short: "Declare an in-the-moment priority override for an item",
	Long: `Record an in-the-moment priority whose choice is making progress
on item-id, in effect until the given wall-clock time. The declaration
names no not-chosen actions; the ranker applies a priority only through
its not-chosen list, so a declaration made here does not reorder the
do-now list.

Examples:
  donow priority declare abc123 --until 2026-08-01T17:00:00Z
  donow priority declare abc123 --kind lowest --until 2026-08-01T17:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeclarePriorityHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		itemID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item ID: %w", err)
		}

		kind, err := parseKind(kindFlag)
		if err != nil {
			return err
		}

		if untilFlag == "" {
			return fmt.Errorf("--until is required (RFC3339 timestamp)")
		}
		until, err := time.Parse(time.RFC3339, untilFlag)
		if err != nil {
			return fmt.Errorf("invalid --until timestamp (use RFC3339): %w", err)
		}

		ctx := cmd.Context()
		declareCmd := commands.DeclareInTheMomentPriorityCommand{
			UserID:        app.CurrentUserID,
			Choice:        domain.MakeProgress{ItemID: itemID},
			Kind:          kind,
			InEffectUntil: []domain.Trigger{domain.WallClockDateTime{At: until}},
		}

		result, err := app.DeclarePriorityHandler.Handle(ctx, declareCmd)
		if err != nil {
			return fmt.Errorf("failed to declare priority: %w", err)
		}

		fmt.Printf("Priority declared: %s\n", result.PriorityID)
		return nil
	},
}

func parseKind(s string) (domain.PriorityKind, error) {
	switch strings.ToLower(s) {
	case "", "highest":
		return domain.Highest, nil
	case "lowest":
		return domain.Lowest, nil
	default:
		return 0, fmt.Errorf("unknown priority kind %q (want highest or lowest)", s)
	}
}

func init() {
	declareCmd.Flags().StringVar(&kindFlag, "kind", "highest", "highest or lowest")
	declareCmd.Flags().StringVar(&untilFlag, "until", "", "RFC3339 timestamp the override expires at")
}
