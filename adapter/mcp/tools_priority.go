package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

type priorityDeclareInput struct {
	ItemID string `json:"item_id" jsonschema:"required"`
	Kind   string `json:"kind,omitempty"` // "highest" (default) or "lowest"
	Until  string `json:"until" jsonschema:"required"` // RFC3339
}

func registerPriorityTools(srv *mcpgo.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("priority.declare").
		Description("Declare an in-the-moment priority override for an item until a wall-clock time").
		Handler(func(ctx context.Context, input priorityDeclareInput) (*commands.DeclarePriorityResult, error) {
			if app == nil || app.DeclarePriorityHandler == nil {
				return nil, errors.New("declaring priorities requires a database connection")
			}

			itemID, err := uuid.Parse(input.ItemID)
			if err != nil {
				return nil, err
			}

			kind := domain.Highest
			if strings.EqualFold(input.Kind, "lowest") {
				kind = domain.Lowest
			}

			until, err := time.Parse(time.RFC3339, input.Until)
			if err != nil {
				return nil, err
			}

			return app.DeclarePriorityHandler.Handle(ctx, commands.DeclareInTheMomentPriorityCommand{
				UserID:        app.CurrentUserID,
				Choice:        domain.MakeProgress{ItemID: itemID},
				Kind:          kind,
				InEffectUntil: []domain.Trigger{domain.WallClockDateTime{At: until}},
			})
		})

	return nil
}
