// Package prompts implements MCP prompt handlers for the dev team.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// KickoffPrompt handles the team-kickoff MCP prompt.
// It guides the AI through seeding a backlog and planning the first sprint.
type KickoffPrompt struct{}

// NewKickoffPrompt creates a KickoffPrompt.
func NewKickoffPrompt() *KickoffPrompt {
	return &KickoffPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *KickoffPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("team-kickoff",
		mcp.WithPromptDescription(
			"Kick off a development effort with the agent team. "+
				"Breaks a feature request into user stories, plans the first sprint, "+
				"and renders the planning briefing for the group chat.",
		),
		mcp.WithArgument("feature_request",
			mcp.ArgumentDescription("The feature or product you want the team to build"),
		),
	)
}

// Handle processes the team-kickoff prompt request.
func (p *KickoffPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	featureRequest := "the feature I describe next"
	if args := req.Params.Arguments; args != nil {
		if fr, ok := args["feature_request"]; ok && fr != "" {
			featureRequest = fr
		}
	}

	return &mcp.GetPromptResult{
		Description: "Team kickoff",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want the dev team to build: %s\n\n"+
						"Please:\n"+
						"1. Break the request into user stories and create each one with `team_create_story` "+
						"(real acceptance criteria, honest point estimates, priority 1 for must-haves)\n"+
						"2. Run `team_plan_sprint` with a concise sprint goal and let it auto-select stories\n"+
						"3. Render the planning briefing with `team_briefing` (kind='planning') and show it to me\n"+
						"4. Summarize the sprint: committed stories, total points, and what got left in the backlog",
					featureRequest,
				)),
			},
		},
	}, nil
}
