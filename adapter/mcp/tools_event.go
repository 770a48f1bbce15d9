package mcp

import (
	"context"
	"errors"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/google/uuid"
)

type eventIDInput struct {
	EventID string `json:"event_id" jsonschema:"required"`
}

func registerEventTools(srv *mcpgo.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("event.trigger").
		Description("Mark an event as triggered").
		Handler(func(ctx context.Context, input eventIDInput) (map[string]string, error) {
			if app == nil || app.EventHandler == nil {
				return nil, errors.New("triggering events requires a database connection")
			}
			eventID, err := uuid.Parse(input.EventID)
			if err != nil {
				return nil, err
			}
			if err := app.EventHandler.HandleTrigger(ctx, commands.TriggerEventCommand{
				UserID: app.CurrentUserID, EventID: eventID, When: nowUTC(),
			}); err != nil {
				return nil, err
			}
			return map[string]string{"status": "triggered", "event_id": input.EventID}, nil
		})

	srv.Tool("event.untrigger").
		Description("Reset an event to untriggered").
		Handler(func(ctx context.Context, input eventIDInput) (map[string]string, error) {
			if app == nil || app.EventHandler == nil {
				return nil, errors.New("untriggering events requires a database connection")
			}
			eventID, err := uuid.Parse(input.EventID)
			if err != nil {
				return nil, err
			}
			if err := app.EventHandler.HandleUntrigger(ctx, commands.UntriggerEventCommand{
				UserID: app.CurrentUserID, EventID: eventID, When: nowUTC(),
			}); err != nil {
				return nil, err
			}
			return map[string]string{"status": "untriggered", "event_id": input.EventID}, nil
		})

	return nil
}
