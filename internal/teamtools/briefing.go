package teamtools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/roles"
	"github.com/mvilela/devcrew/internal/team"
)

// BriefingTool handles the team_briefing MCP tool. It renders the group-chat
// kickoff message for a session kind; the caller pastes the text into the
// agent runtime, this server never talks to one.
type BriefingTool struct {
	mgr      *team.Manager
	renderer *roles.Renderer
}

// NewBriefingTool creates a BriefingTool bound to a manager and a renderer.
func NewBriefingTool(mgr *team.Manager, renderer *roles.Renderer) *BriefingTool {
	return &BriefingTool{mgr: mgr, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *BriefingTool) Definition() mcp.Tool {
	return mcp.NewTool("team_briefing",
		mcp.WithDescription(
			"Render the group-chat briefing for a team session. "+
				"'planning' needs goal and requirements, 'execution' needs feature_request, "+
				"'review' needs code_path, 'retrospective' needs nothing extra.",
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Session kind"),
			mcp.Enum("planning", "execution", "review", "retrospective"),
		),
		mcp.WithString("goal",
			mcp.Description("Sprint goal (planning)"),
		),
		mcp.WithString("requirements",
			mcp.Description("Requirements summary (planning)"),
		),
		mcp.WithString("feature_request",
			mcp.Description("Feature to implement (execution)"),
		),
		mcp.WithNumber("max_rounds",
			mcp.Description("Collaboration round budget (execution, defaults to the configured value)"),
		),
		mcp.WithString("code_path",
			mcp.Description("Path of the code under review (review)"),
		),
		mcp.WithString("criteria",
			mcp.Description("Review criteria, one per line (review, defaults to the standard list)"),
		),
	)
}

// Handle processes the team_briefing tool call.
func (t *BriefingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := roles.BriefingKind(req.GetString("kind", ""))
	if err := roles.ValidateBriefingKind(kind); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := t.mgr.Config()
	var data any
	switch kind {
	case roles.BriefingPlanning:
		goal := req.GetString("goal", "")
		requirements := req.GetString("requirements", "")
		if strings.TrimSpace(goal) == "" || strings.TrimSpace(requirements) == "" {
			return mcp.NewToolResultError("planning briefings need 'goal' and 'requirements'"), nil
		}
		data = roles.PlanningData{
			Goal:         goal,
			Requirements: requirements,
			Capacity:     cfg.CapacityPoints,
			DurationDays: cfg.DurationDays,
		}
	case roles.BriefingExecution:
		fr := req.GetString("feature_request", "")
		if strings.TrimSpace(fr) == "" {
			return mcp.NewToolResultError("execution briefings need 'feature_request'"), nil
		}
		data = roles.ExecutionData{
			FeatureRequest: fr,
			ProjectPath:    t.mgr.ProjectPath(),
			MaxRounds:      int(req.GetFloat("max_rounds", float64(cfg.MaxRounds))),
		}
	case roles.BriefingReview:
		codePath := req.GetString("code_path", "")
		if strings.TrimSpace(codePath) == "" {
			return mcp.NewToolResultError("review briefings need 'code_path'"), nil
		}
		data = roles.ReviewData{
			CodePath: codePath,
			Criteria: splitList(req.GetString("criteria", "")),
		}
	case roles.BriefingRetrospective:
		data = nil
	}

	text, err := t.renderer.Render(kind, data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
