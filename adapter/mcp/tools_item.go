package mcp

import (
	"context"
	"errors"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/google/uuid"
)

type itemCreateInput struct {
	Summary         string `json:"summary" jsonschema:"required"`
	AfterNewEventOf string `json:"after_new_event_of,omitempty"`
}

type itemIDInput struct {
	ItemID string `json:"item_id" jsonschema:"required"`
}

type itemListInput struct {
	IncludeFinished bool `json:"include_finished,omitempty"`
}

func registerItemTools(srv *mcpgo.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("item.create").
		Description("Create a new item, optionally waiting on a new event").
		Handler(func(ctx context.Context, input itemCreateInput) (*commands.NewItemResult, error) {
			if app == nil || app.NewItemHandler == nil {
				return nil, errors.New("item creation requires a database connection")
			}
			cmd := commands.NewItemCommand{UserID: app.CurrentUserID, Summary: input.Summary}
			if input.AfterNewEventOf != "" {
				cmd.NewEvent = &commands.NewEventSpec{Summary: input.AfterNewEventOf}
			}
			return app.NewItemHandler.Handle(ctx, cmd)
		})

	srv.Tool("item.finish").
		Description("Mark an item finished").
		Handler(func(ctx context.Context, input itemIDInput) (map[string]string, error) {
			if app == nil || app.FinishItemHandler == nil {
				return nil, errors.New("finishing items requires a database connection")
			}
			itemID, err := uuid.Parse(input.ItemID)
			if err != nil {
				return nil, err
			}
			if err := app.FinishItemHandler.Handle(ctx, commands.FinishItemCommand{
				UserID: app.CurrentUserID, ItemID: itemID, When: nowUTC(),
			}); err != nil {
				return nil, err
			}
			return map[string]string{"status": "finished", "item_id": input.ItemID}, nil
		})

	srv.Tool("item.show").
		Description("Get a single item's full detail").
		Handler(func(ctx context.Context, input itemIDInput) (*queries.ItemDTO, error) {
			if app == nil || app.GetItemHandler == nil {
				return nil, errors.New("fetching items requires a database connection")
			}
			itemID, err := uuid.Parse(input.ItemID)
			if err != nil {
				return nil, err
			}
			return app.GetItemHandler.Handle(ctx, queries.GetItemQuery{UserID: app.CurrentUserID, ItemID: itemID})
		})

	srv.Tool("item.list").
		Description("List items, optionally including finished ones").
		Handler(func(ctx context.Context, input itemListInput) ([]queries.ItemDTO, error) {
			if app == nil || app.ListItemsHandler == nil {
				return nil, errors.New("listing items requires a database connection")
			}
			return app.ListItemsHandler.Handle(ctx, queries.ListItemsQuery{
				UserID:          app.CurrentUserID,
				IncludeFinished: input.IncludeFinished,
			})
		})

	return nil
}
