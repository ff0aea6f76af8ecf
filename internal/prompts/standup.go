package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StandupPrompt handles the team-standup MCP prompt.
// It instructs the AI to read and present the current team state.
type StandupPrompt struct{}

// NewStandupPrompt creates a StandupPrompt.
func NewStandupPrompt() *StandupPrompt {
	return &StandupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StandupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("team-standup",
		mcp.WithPromptDescription(
			"Daily standup view: current sprint, backlog pressure, "+
				"and what the team should tackle next.",
		),
	)
}

// Handle processes the team-standup prompt request.
func (p *StandupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Team standup",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `team_status` to check on the dev team.\n\n" +
						"Then:\n" +
						"1. Show the current sprint (goal, phase, committed stories) in a clear format\n" +
						"2. Flag backlog pressure: how many stories are waiting and their total points\n" +
						"3. If a sprint is running, suggest the next concrete step (execute, review, or retrospective)\n" +
						"4. If no sprint is planned, recommend whether the backlog is ready for planning",
				),
			},
		},
	}, nil
}
