package mcp

import (
	"context"
	"errors"
	"time"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

type timelogRecordInput struct {
	ItemIDs    []string `json:"item_ids" jsonschema:"required"`
	StartedAt  string   `json:"started_at" jsonschema:"required"` // RFC3339
	StoppedAt  string   `json:"stopped_at" jsonschema:"required"` // RFC3339
	Dedication string   `json:"dedication,omitempty"`
}

func registerTimelogTools(srv *mcpgo.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("timelog.record").
		Description("Record time spent working on one or more items").
		Handler(func(ctx context.Context, input timelogRecordInput) (*commands.RecordTimeSpentResult, error) {
			if app == nil || app.RecordTimeSpentHandler == nil {
				return nil, errors.New("recording time requires a database connection")
			}

			workedOn := make([]uuid.UUID, len(input.ItemIDs))
			for i, s := range input.ItemIDs {
				id, err := uuid.Parse(s)
				if err != nil {
					return nil, err
				}
				workedOn[i] = id
			}

			start, err := time.Parse(time.RFC3339, input.StartedAt)
			if err != nil {
				return nil, err
			}
			stop, err := time.Parse(time.RFC3339, input.StoppedAt)
			if err != nil {
				return nil, err
			}

			var dedication *string
			if input.Dedication != "" {
				dedication = &input.Dedication
			}

			return app.RecordTimeSpentHandler.Handle(ctx, commands.RecordTimeSpentCommand{
				UserID:             app.CurrentUserID,
				StartedAt:          start,
				StoppedAt:          stop,
				WorkedOn:           workedOn,
				UrgencyAtSelection: domain.InTheModeByImportance{},
				Dedication:         dedication,
			})
		})

	return nil
}
