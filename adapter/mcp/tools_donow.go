package mcp

import (
	"context"
	"errors"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/queries"
)

type emptyInput struct{}

func registerDoNowTools(srv *mcpgo.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("donow.list").
		Description("Run the readiness/urgency/review/ranking pipeline and return the ranked do-now list").
		Handler(func(ctx context.Context, input emptyInput) ([]queries.ActionDTO, error) {
			if app == nil || app.GetDoNowListHandler == nil {
				return nil, errors.New("computing the do-now list requires a database connection")
			}
			return app.GetDoNowListHandler.Handle(ctx, queries.GetDoNowListQuery{UserID: app.CurrentUserID})
		})

	return nil
}
