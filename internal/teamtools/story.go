package teamtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// CreateStoryTool handles the team_create_story MCP tool.
type CreateStoryTool struct {
	mgr *team.Manager
}

// NewCreateStoryTool creates a CreateStoryTool bound to a team manager.
func NewCreateStoryTool(mgr *team.Manager) *CreateStoryTool {
	return &CreateStoryTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("team_create_story",
		mcp.WithDescription(
			"Create a new user story in the product backlog. "+
				"The story gets a sequential ID (US-001, US-002, ...) and starts in 'backlog' status. "+
				"Write real acceptance criteria — they are what the QA engineer validates against.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short story title, e.g. 'User login with OAuth'"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the story delivers and for whom"),
		),
		mcp.WithString("acceptance_criteria",
			mcp.Description("Acceptance criteria, one per line"),
		),
		mcp.WithNumber("story_points",
			mcp.Description("Relative effort estimate (default 5)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority, lower is more urgent (default 3)"),
		),
	)
}

// Handle processes the team_create_story tool call.
func (t *CreateStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	description := req.GetString("description", "")
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	if strings.TrimSpace(description) == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	criteria := splitList(req.GetString("acceptance_criteria", ""))
	points := int(req.GetFloat("story_points", 5))
	priority := int(req.GetFloat("priority", 3))

	story := t.mgr.CreateStory(title, description, criteria, points, priority)

	var criteriaList strings.Builder
	for _, c := range story.AcceptanceCriteria {
		fmt.Fprintf(&criteriaList, "- %s\n", c)
	}
	if len(story.AcceptanceCriteria) == 0 {
		criteriaList.WriteString("- (none provided)\n")
	}

	response := fmt.Sprintf(
		"# Story Created\n\n"+
			"**ID:** `%s`\n"+
			"**Title:** %s\n"+
			"**Points:** %d\n"+
			"**Priority:** %d\n"+
			"**Status:** %s\n\n"+
			"## Acceptance Criteria\n\n%s\n"+
			"Backlog size: %d. Plan a sprint with `team_plan_sprint` when the backlog is ready.",
		story.ID, story.Title, story.StoryPoints, story.Priority, story.Status,
		criteriaList.String(), t.mgr.Status().BacklogSize,
	)
	return mcp.NewToolResultText(response), nil
}
