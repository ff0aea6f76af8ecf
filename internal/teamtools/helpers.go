// Package teamtools implements the MCP tool handlers for the sprint
// backlog manager: story creation, sprint planning, result recording,
// status, export, and group-chat briefings.
//
// Each tool is a struct that receives its dependencies via constructor and
// exposes Definition()/Handle() for registration. One file per tool.
package teamtools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// splitList parses a human-friendly list parameter: items separated by
// newlines or commas, trimmed, empties dropped. Returns nil for blank
// input.
func splitList(s string) []string {
	var items []string
	for _, line := range strings.Split(s, "\n") {
		for _, part := range strings.Split(line, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// hasArg reports whether the argument was supplied at all, which is
// distinct from being supplied empty.
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}
