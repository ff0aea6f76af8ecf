package teamtools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// TeamStatusTool handles the team_status MCP tool.
type TeamStatusTool struct {
	mgr *team.Manager
}

// NewTeamStatusTool creates a TeamStatusTool bound to a team manager.
func NewTeamStatusTool(mgr *team.Manager) *TeamStatusTool {
	return &TeamStatusTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *TeamStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("team_status",
		mcp.WithDescription(
			"Get the current team status: composition, current sprint, backlog size, "+
				"sprint history count, and sprint configuration. Returns JSON.",
		),
	)
}

// Handle processes the team_status tool call.
func (t *TeamStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := t.mgr.Status()
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
