package teamtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// ExportHistoryTool handles the team_export_history MCP tool.
type ExportHistoryTool struct {
	mgr *team.Manager
}

// NewExportHistoryTool creates an ExportHistoryTool bound to a team manager.
func NewExportHistoryTool(mgr *team.Manager) *ExportHistoryTool {
	return &ExportHistoryTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *ExportHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("team_export_history",
		mcp.WithDescription(
			"Export the team snapshot (status, backlog, sprint history) as JSON. "+
				"Defaults to sprint_history.json in the project directory.",
		),
		mcp.WithString("path",
			mcp.Description("Target file path (optional)"),
		),
	)
}

// Handle processes the team_export_history tool call.
func (t *ExportHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := t.mgr.ExportHistory(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}

	status := t.mgr.Status()
	response := fmt.Sprintf(
		"# History Exported\n\n"+
			"**File:** `%s`\n"+
			"**Backlog stories:** %d\n"+
			"**Sprint records:** %d\n",
		path, status.BacklogSize, status.SprintHistoryCount,
	)
	return mcp.NewToolResultText(response), nil
}
