package toolkit

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultExtensions are the source extensions analyzed when the caller
// doesn't narrow them down.
var defaultExtensions = []string{".go", ".py", ".js", ".ts", ".java", ".c", ".h"}

// AnalyzeCodebaseTool handles the dev_analyze_codebase MCP tool.
type AnalyzeCodebaseTool struct{}

// NewAnalyzeCodebaseTool creates an AnalyzeCodebaseTool.
func NewAnalyzeCodebaseTool() *AnalyzeCodebaseTool {
	return &AnalyzeCodebaseTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *AnalyzeCodebaseTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_analyze_codebase",
		mcp.WithDescription(
			"Analyze a codebase: file and line counts per extension, directory "+
				"structure, and detected project patterns. Returns JSON.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Path to the project directory"),
		),
		mcp.WithBoolean("include_tests",
			mcp.Description("Include test files in the counts (default true)"),
		),
		mcp.WithString("extensions",
			mcp.Description("File extensions to count, comma separated (default common source extensions)"),
		),
	)
}

type codebaseAnalysis struct {
	ProjectPath string         `json:"project_path"`
	AnalyzedAt  string         `json:"analyzed_at"`
	FileCounts  map[string]int `json:"file_counts"`
	LineCounts  map[string]int `json:"line_counts"`
	Totals      struct {
		TotalFiles      int     `json:"total_files"`
		TotalLines      int     `json:"total_lines"`
		AvgLinesPerFile float64 `json:"average_lines_per_file"`
	} `json:"totals"`
	Structure struct {
		TotalDirectories int      `json:"total_directories"`
		MaxDepth         int      `json:"max_depth"`
		Patterns         []string `json:"common_patterns"`
	} `json:"structure_analysis"`
}

// Handle processes the dev_analyze_codebase tool call.
func (t *AnalyzeCodebaseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("project path does not exist or is not a directory: %s", root)), nil
	}

	includeTests := req.GetBool("include_tests", true)
	extensions := splitLines(req.GetString("extensions", ""))
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = true
	}

	analysis := codebaseAnalysis{
		ProjectPath: root,
		AnalyzedAt:  time.Now().Format(time.RFC3339),
		FileCounts:  make(map[string]int),
		LineCounts:  make(map[string]int),
	}
	for ext := range wanted {
		analysis.FileCounts[ext] = 0
		analysis.LineCounts[ext] = 0
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if d.Name() == ".git" || d.Name() == "node_modules" || d.Name() == "vendor" {
				return filepath.SkipDir
			}
			analysis.Structure.TotalDirectories++
			if depth := strings.Count(rel, string(filepath.Separator)) + 1; depth > analysis.Structure.MaxDepth {
				analysis.Structure.MaxDepth = depth
			}
			return nil
		}

		ext := filepath.Ext(path)
		if !wanted[ext] {
			return nil
		}
		if !includeTests && isTestFile(rel) {
			return nil
		}

		lines, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		analysis.FileCounts[ext]++
		analysis.LineCounts[ext] += lines
		analysis.Totals.TotalFiles++
		analysis.Totals.TotalLines += lines
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("walking project: %v", err)), nil
	}

	if analysis.Totals.TotalFiles > 0 {
		analysis.Totals.AvgLinesPerFile = float64(analysis.Totals.TotalLines) / float64(analysis.Totals.TotalFiles)
	}
	analysis.Structure.Patterns = identifyProjectPatterns(root)

	return jsonResult(analysis)
}

// isTestFile reports whether the relative path looks like test code.
func isTestFile(rel string) bool {
	lower := strings.ToLower(rel)
	if strings.HasSuffix(lower, "_test.go") {
		return true
	}
	for _, seg := range strings.Split(lower, string(filepath.Separator)) {
		if seg == "test" || seg == "tests" || seg == "testdata" {
			return true
		}
	}
	return false
}

// countLines counts newline-terminated lines in the file at path.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	return lines, scanner.Err()
}

// identifyProjectPatterns detects common project markers at the root.
func identifyProjectPatterns(root string) []string {
	markers := []struct {
		file    string
		pattern string
	}{
		{"go.mod", "Go module"},
		{"package.json", "Node.js/JavaScript project"},
		{"requirements.txt", "Python project"},
		{"pyproject.toml", "Python project"},
		{"pom.xml", "Maven/Java project"},
		{"Cargo.toml", "Rust project"},
		{".git", "Git repository"},
		{"Dockerfile", "Docker containerized"},
		{".github", "GitHub Actions"},
		{"devcrew.yaml", "devcrew project"},
	}

	var patterns []string
	seen := make(map[string]bool)
	for _, m := range markers {
		if seen[m.pattern] {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			patterns = append(patterns, m.pattern)
			seen[m.pattern] = true
		}
	}
	if patterns == nil {
		patterns = []string{}
	}
	return patterns
}
