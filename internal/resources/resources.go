// Package resources implements MCP resource handlers for the dev team.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (devcrew://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/team"
)

// Handler manages dev team resource endpoints.
type Handler struct {
	mgr *team.Manager
}

// NewHandler creates a resource Handler bound to a team manager.
func NewHandler(mgr *team.Manager) *Handler {
	return &Handler{mgr: mgr}
}

// StatusResource returns the MCP resource definition for team status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"devcrew://team/status",
		"Team Status",
		mcp.WithResourceDescription("Team composition, current sprint, backlog size, and sprint configuration"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current team status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.mgr.Status(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// BacklogResource returns the MCP resource definition for the backlog.
func (h *Handler) BacklogResource() mcp.Resource {
	return mcp.NewResource(
		"devcrew://team/backlog",
		"Product Backlog",
		mcp.WithResourceDescription("All user stories in creation order, with status and estimates"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleBacklog returns the full backlog as JSON.
func (h *Handler) HandleBacklog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	backlog := h.mgr.Backlog()
	if backlog == nil {
		backlog = []team.UserStory{}
	}
	data, err := json.MarshalIndent(backlog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling backlog: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}
