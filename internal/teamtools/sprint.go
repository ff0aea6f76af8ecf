package teamtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// PlanSprintTool handles the team_plan_sprint MCP tool.
type PlanSprintTool struct {
	mgr *team.Manager
}

// NewPlanSprintTool creates a PlanSprintTool bound to a team manager.
func NewPlanSprintTool(mgr *team.Manager) *PlanSprintTool {
	return &PlanSprintTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanSprintTool) Definition() mcp.Tool {
	return mcp.NewTool("team_plan_sprint",
		mcp.WithDescription(
			"Plan a new sprint. Without story_ids, backlog stories are auto-selected "+
				"greedily by priority within the configured capacity. With story_ids, "+
				"the given stories are taken as-is without capacity checks. "+
				"Replaces any current sprint.",
		),
		mcp.WithString("goal",
			mcp.Required(),
			mcp.Description("The sprint goal, e.g. 'Ship the payments MVP'"),
		),
		mcp.WithString("story_ids",
			mcp.Description("Explicit story IDs (comma or newline separated). Omit to auto-select."),
		),
	)
}

// Handle processes the team_plan_sprint tool call.
func (t *PlanSprintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal := req.GetString("goal", "")
	if strings.TrimSpace(goal) == "" {
		return mcp.NewToolResultError("'goal' is required"), nil
	}

	// nil means auto-select; a provided list is used verbatim. An argument
	// that is present but blank still means auto-select.
	var selected []string
	if hasArg(req, "story_ids") {
		selected = splitList(req.GetString("story_ids", ""))
	}
	explicit := selected != nil

	sprint := t.mgr.PlanSprint(goal, selected)

	var stories strings.Builder
	totalPoints := 0
	for _, id := range sprint.Stories {
		if story, ok := t.mgr.Story(id); ok {
			fmt.Fprintf(&stories, "- `%s` %s (%d pts, priority %d)\n",
				story.ID, story.Title, story.StoryPoints, story.Priority)
			totalPoints += story.StoryPoints
		} else {
			fmt.Fprintf(&stories, "- `%s` (not in backlog)\n", id)
		}
	}
	if len(sprint.Stories) == 0 {
		stories.WriteString("- (no stories selected)\n")
	}

	mode := "auto-selected by priority within capacity"
	if explicit {
		mode = "explicitly selected (capacity not enforced)"
	}

	response := fmt.Sprintf(
		"# Sprint Planned\n\n"+
			"**ID:** `%s`\n"+
			"**Goal:** %s\n"+
			"**Phase:** %s\n"+
			"**Duration:** %s → %s\n"+
			"**Capacity:** %d points, committed %d\n"+
			"**Selection:** %s\n\n"+
			"## Sprint Backlog\n\n%s",
		sprint.ID, sprint.Goal, sprint.Phase,
		sprint.StartDate.Format("2006-01-02"), sprint.EndDate.Format("2006-01-02"),
		sprint.Capacity, totalPoints, mode, stories.String(),
	)
	return mcp.NewToolResultText(response), nil
}
