// Package mcp registers MCP tools/resources/prompts that mirror the
// donow CLI, grounded on the teacher's adapter/mcp package.
package mcp

import (
	"errors"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/donow-app/donow/adapter/cli"
)

// ToolDependencies provides the CLI app MCP tools delegate to.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcpgo.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	if err := registerItemTools(srv, deps); err != nil {
		return err
	}
	if err := registerEventTools(srv, deps); err != nil {
		return err
	}
	if err := registerTimelogTools(srv, deps); err != nil {
		return err
	}
	if err := registerPriorityTools(srv, deps); err != nil {
		return err
	}
	if err := registerDoNowTools(srv, deps); err != nil {
		return err
	}
	return nil
}
