package toolkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// QualityCheckTool handles the dev_quality_check MCP tool. It shells out to
// the Go quality toolchain and reports per-tool results.
type QualityCheckTool struct {
	defaultTools []string
}

// NewQualityCheckTool creates a QualityCheckTool. The tool list comes from
// project configuration and is used when the caller doesn't pass one.
func NewQualityCheckTool(defaultTools []string) *QualityCheckTool {
	return &QualityCheckTool{defaultTools: defaultTools}
}

// Definition returns the MCP tool definition for registration.
func (t *QualityCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_quality_check",
		mcp.WithDescription(
			"Run code quality checks on a Go project (vet, gofmt, staticcheck). "+
				"Reports per-tool exit codes and output as JSON.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Path to the project directory"),
		),
		mcp.WithString("tools",
			mcp.Description("Tools to run, comma separated (default from project config)"),
		),
	)
}

type toolResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

type qualityReport struct {
	ProjectPath string                `json:"project_path"`
	Timestamp   string                `json:"timestamp"`
	ToolResults map[string]toolResult `json:"tool_results"`
	Summary     struct {
		TotalTools      int  `json:"total_tools"`
		SuccessfulTools int  `json:"successful_tools"`
		FailedTools     int  `json:"failed_tools"`
		OverallSuccess  bool `json:"overall_success"`
	} `json:"summary"`
}

// Handle processes the dev_quality_check tool call.
func (t *QualityCheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("project path does not exist or is not a directory: %s", root)), nil
	}

	tools := splitLines(req.GetString("tools", ""))
	if len(tools) == 0 {
		tools = t.defaultTools
	}
	if len(tools) == 0 {
		tools = []string{"vet", "gofmt"}
	}

	report := qualityReport{
		ProjectPath: root,
		Timestamp:   time.Now().Format(time.RFC3339),
		ToolResults: make(map[string]toolResult, len(tools)),
	}

	for _, tool := range tools {
		report.ToolResults[tool] = runQualityTool(ctx, root, tool)
	}

	report.Summary.TotalTools = len(tools)
	for _, res := range report.ToolResults {
		if res.Success {
			report.Summary.SuccessfulTools++
		} else {
			report.Summary.FailedTools++
		}
	}
	report.Summary.OverallSuccess = report.Summary.FailedTools == 0

	return jsonResult(report)
}

// runQualityTool executes one named quality tool in the project directory.
func runQualityTool(ctx context.Context, root, tool string) toolResult {
	var cmd *exec.Cmd
	switch tool {
	case "vet":
		cmd = exec.CommandContext(ctx, "go", "vet", "./...")
	case "gofmt":
		cmd = exec.CommandContext(ctx, "gofmt", "-l", ".")
	case "staticcheck":
		cmd = exec.CommandContext(ctx, "staticcheck", "./...")
	default:
		return toolResult{Error: fmt.Sprintf("unsupported tool %q", tool)}
	}
	cmd.Dir = root

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := toolResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Error = err.Error() // binary missing or not runnable
			return res
		}
	}

	res.Success = res.ExitCode == 0
	// gofmt -l exits 0 even when files need formatting; output means failure.
	if tool == "gofmt" && strings.TrimSpace(res.Stdout) != "" {
		res.Success = false
	}
	return res
}
