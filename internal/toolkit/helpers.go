// Package toolkit implements the development tools the agent team uses
// during sprint execution: codebase analysis, quality checks, HTTP and
// browser access, SQLite inspection, and system metrics.
//
// Tools return JSON so agents can parse the results mechanically. Same
// registration shape as the team tools: Definition()/Handle() per struct.
package toolkit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v as an indented-JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// splitLines parses a newline- or comma-separated list parameter.
func splitLines(s string) []string {
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

// parseHeaders parses "Name: value" lines into a header map. Lines without
// a colon are skipped.
func parseHeaders(s string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(s, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers
}
