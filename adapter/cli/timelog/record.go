package timelog

import (
	"fmt"
	"time"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	startedAt  string
	stoppedAt  string
	dedication string
)

var recordCmd = &cobra.Command{
	Use:   "record [item-id...]",
	Short: "Record time spent on one or more items",
	Long: `Append a work-log entry covering one or more items.

Examples:
  donow timelog record abc123 --start 09:00 --stop 09:45
  donow timelog record abc123 def456 --start 09:00 --stop 10:30 --dedication "paired with Sam"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordTimeSpentHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		workedOn := make([]uuid.UUID, len(args))
		for i, a := range args {
			id, err := uuid.Parse(a)
			if err != nil {
				return fmt.Errorf("invalid item ID %q: %w", a, err)
			}
			workedOn[i] = id
		}

		start, stop, err := parseWindow(startedAt, stoppedAt)
		if err != nil {
			return err
		}

		var ded *string
		if dedication != "" {
			ded = &dedication
		}

		ctx := cmd.Context()
		recordCmd := commands.RecordTimeSpentCommand{
			UserID:             app.CurrentUserID,
			StartedAt:          start,
			StoppedAt:          stop,
			WorkedOn:           workedOn,
			UrgencyAtSelection: domain.InTheModeByImportance{},
			Dedication:         ded,
		}
		result, err := app.RecordTimeSpentHandler.Handle(ctx, recordCmd)
		if err != nil {
			return fmt.Errorf("failed to record time spent: %w", err)
		}

		fmt.Printf("Time logged: %s (%s)\n", result.TimeSpentID, stop.Sub(start))
		return nil
	},
}

func parseWindow(start, stop string) (time.Time, time.Time, error) {
	if start == "" || stop == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("both --start and --stop are required (HH:MM)")
	}

	now := time.Now()

	startT, err := time.ParseInLocation("15:04", start, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start time (use HH:MM): %w", err)
	}
	stopT, err := time.ParseInLocation("15:04", stop, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --stop time (use HH:MM): %w", err)
	}

	startAt := time.Date(now.Year(), now.Month(), now.Day(), startT.Hour(), startT.Minute(), 0, 0, now.Location())
	stopAt := time.Date(now.Year(), now.Month(), now.Day(), stopT.Hour(), stopT.Minute(), 0, 0, now.Location())
	return startAt, stopAt, nil
}

func init() {
	recordCmd.Flags().StringVar(&startedAt, "start", "", "start time (HH:MM, today)")
	recordCmd.Flags().StringVar(&stoppedAt, "stop", "", "stop time (HH:MM, today)")
	recordCmd.Flags().StringVar(&dedication, "dedication", "", "optional free-text note on this work session")
}
