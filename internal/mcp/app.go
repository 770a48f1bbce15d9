// Package mcp bridges the internal/app.Container into the adapter/cli
// and adapter/mcp layers so cmd/mcp can start a single MCP server that
// mirrors the CLI's surface, grounded on the teacher's internal/mcp
// package.
package mcp

import (
	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/internal/app"
	"github.com/google/uuid"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container, currentUser uuid.UUID) *cli.App {
	cliApp := cli.NewApp(
		container.NewItemHandler,
		container.FinishItemHandler,
		container.FieldHandler,
		container.ParentItemHandler,
		container.CoverItemHandler,
		container.DependencyHandler,
		container.EventHandler,
		container.RecordTimeSpentHandler,
		container.DeclarePriorityHandler,
		container.GetItemHandler,
		container.ListItemsHandler,
		container.GetDoNowListHandler,
	)
	cliApp.SetCurrentUserID(currentUser)
	return cliApp
}
