package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/internal/workitems/application/queries"
)

// RegisterResources registers MCP resources exposing donow's
// read-models, grounded on the teacher's adapter/mcp/resources.go.
func RegisterResources(srv *mcpgo.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("donow://do-now-list").
		Name("Do-now list").
		Description("The current ranked do-now list for the active user").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcpgo.ResourceContent, error) {
			if app == nil || app.GetDoNowListHandler == nil {
				return nil, fmt.Errorf("the do-now list requires a database connection")
			}
			actions, err := app.GetDoNowListHandler.Handle(ctx, queries.GetDoNowListQuery{UserID: app.CurrentUserID})
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(actions)
			if err != nil {
				return nil, err
			}
			return &mcpgo.ResourceContent{URI: uri, MimeType: "application/json", Text: string(data)}, nil
		})

	srv.Resource("donow://items").
		Name("Items").
		Description("All unfinished items for the active user").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcpgo.ResourceContent, error) {
			if app == nil || app.ListItemsHandler == nil {
				return nil, fmt.Errorf("item listing requires a database connection")
			}
			items, err := app.ListItemsHandler.Handle(ctx, queries.ListItemsQuery{UserID: app.CurrentUserID})
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(items)
			if err != nil {
				return nil, err
			}
			return &mcpgo.ResourceContent{URI: uri, MimeType: "application/json", Text: string(data)}, nil
		})

	return nil
}
