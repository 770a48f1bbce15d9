package mcp

import (
	"context"
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common donow workflows,
// grounded on the teacher's adapter/mcp/prompts.go.
func RegisterPrompts(srv *mcpgo.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("triage").
		Description("Walk through the current do-now list and decide what to act on next.").
		Handler(func(ctx context.Context, args map[string]string) (*mcpgo.PromptResult, error) {
			return &mcpgo.PromptResult{
				Description: "Do-now triage",
				Messages: []mcpgo.PromptMessage{
					{
						Role: string(mcpgo.RoleUser),
						Content: mcpgo.TextContent{
							Type: "text",
							Text: `Read the donow://do-now-list resource and:

1. Summarize the top few actions in plain language.
2. For each PickWhatShouldBeDoneFirst action, ask me which of its choices to do first.
3. Offer to run item.finish, event.trigger, or timelog.record for whatever I pick.`,
						},
					},
				},
			}, nil
		})

	return nil
}
