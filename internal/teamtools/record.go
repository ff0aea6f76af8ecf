package teamtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// RecordResultTool handles the team_record_result MCP tool. It appends an
// execution record to the sprint history after a group-chat run.
type RecordResultTool struct {
	mgr *team.Manager
}

// NewRecordResultTool creates a RecordResultTool bound to a team manager.
func NewRecordResultTool(mgr *team.Manager) *RecordResultTool {
	return &RecordResultTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *RecordResultTool) Definition() mcp.Tool {
	return mcp.NewTool("team_record_result",
		mcp.WithDescription(
			"Record the outcome of a sprint execution run into the sprint history. "+
				"Call this after the team's group-chat session finishes.",
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("What the sprint delivered, in a few sentences"),
		),
		mcp.WithString("status",
			mcp.Description("Run outcome (default 'completed')"),
			mcp.Enum("completed", "failed"),
		),
		mcp.WithString("feature_request",
			mcp.Description("The feature request the run worked on, if any"),
		),
	)
}

// Handle processes the team_record_result tool call.
func (t *RecordResultTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := req.GetString("summary", "")
	if strings.TrimSpace(summary) == "" {
		return mcp.NewToolResultError("'summary' is required"), nil
	}

	status := req.GetString("status", "completed")
	if status != "completed" && status != "failed" {
		return mcp.NewToolResultError("'status' must be 'completed' or 'failed'"), nil
	}

	phase := team.PhaseComplete
	if status == "failed" {
		phase = team.PhaseDevelopment
	}

	rec := team.SprintResult{
		"summary":   summary,
		"status":    status,
		"phase":     string(phase),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if fr := req.GetString("feature_request", ""); fr != "" {
		rec["feature_request"] = fr
	}
	if sprint := t.mgr.CurrentSprint(); sprint != nil {
		rec["sprint_id"] = sprint.ID
		rec["goal"] = sprint.Goal
	}
	t.mgr.RecordSprintResult(rec)

	response := fmt.Sprintf(
		"# Sprint Result Recorded\n\n"+
			"**Status:** %s\n"+
			"**Summary:** %s\n\n"+
			"History now holds %d sprint record(s). Export with `team_export_history`.",
		status, summary, t.mgr.Status().SprintHistoryCount,
	)
	return mcp.NewToolResultText(response), nil
}
