package teamtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvilela/devcrew/internal/roles"
	"github.com/mvilela/devcrew/internal/team"
)

// --- helpers ---

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

func getResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var b strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func testManager(t *testing.T) *team.Manager {
	t.Helper()
	return team.NewManager(team.Options{
		ProjectPath: t.TempDir(),
		Roster:      roles.DefaultRoster(),
	})
}

func createStory(t *testing.T, tool *CreateStoryTool, args map[string]interface{}) string {
	t.Helper()
	result, err := tool.Handle(context.Background(), newRequest(args))
	if err != nil {
		t.Fatalf("CreateStory handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("CreateStory returned error: %s", getResultText(result))
	}
	return getResultText(result)
}

// --- CreateStoryTool ---

func TestCreateStoryTool_Basic(t *testing.T) {
	mgr := testManager(t)
	tool := NewCreateStoryTool(mgr)

	text := createStory(t, tool, map[string]interface{}{
		"title":               "User login",
		"description":         "Users can sign in with email",
		"acceptance_criteria": "form validates email\nsession persists",
		"story_points":        float64(8),
		"priority":            float64(1),
	})

	if !strings.Contains(text, "US-001") {
		t.Errorf("response should contain story ID, got:\n%s", text)
	}
	if !strings.Contains(text, "form validates email") {
		t.Error("response should list acceptance criteria")
	}

	story, ok := mgr.Story("US-001")
	if !ok {
		t.Fatal("story not stored")
	}
	if story.StoryPoints != 8 || story.Priority != 1 {
		t.Errorf("points/priority = %d/%d, want 8/1", story.StoryPoints, story.Priority)
	}
	if len(story.AcceptanceCriteria) != 2 {
		t.Errorf("criteria count = %d, want 2", len(story.AcceptanceCriteria))
	}
}

func TestCreateStoryTool_Defaults(t *testing.T) {
	mgr := testManager(t)
	tool := NewCreateStoryTool(mgr)

	createStory(t, tool, map[string]interface{}{
		"title":       "Minimal story",
		"description": "No estimates given",
	})

	story, _ := mgr.Story("US-001")
	if story.StoryPoints != 5 {
		t.Errorf("default points = %d, want 5", story.StoryPoints)
	}
	if story.Priority != 3 {
		t.Errorf("default priority = %d, want 3", story.Priority)
	}
	if len(story.AcceptanceCriteria) != 0 {
		t.Errorf("criteria should be empty, got %v", story.AcceptanceCriteria)
	}
}

func TestCreateStoryTool_MissingTitle(t *testing.T) {
	tool := NewCreateStoryTool(testManager(t))

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"description": "no title",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing title should yield an error result")
	}
}

func TestCreateStoryTool_MissingDescription(t *testing.T) {
	tool := NewCreateStoryTool(testManager(t))

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"title": "no description",
	}))
	if !isErrorResult(result) {
		t.Error("missing description should yield an error result")
	}
}

// --- PlanSprintTool ---

func TestPlanSprintTool_AutoSelect(t *testing.T) {
	mgr := testManager(t)
	create := NewCreateStoryTool(mgr)
	plan := NewPlanSprintTool(mgr)

	createStory(t, create, map[string]interface{}{
		"title": "Big one", "description": "d",
		"story_points": float64(30), "priority": float64(2),
	})
	createStory(t, create, map[string]interface{}{
		"title": "Small one", "description": "d",
		"story_points": float64(5), "priority": float64(1),
	})

	result, err := plan.Handle(context.Background(), newRequest(map[string]interface{}{
		"goal": "Ship it",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "Sprint-1") {
		t.Errorf("response should name Sprint-1, got:\n%s", text)
	}
	if !strings.Contains(text, "auto-selected") {
		t.Error("response should state auto-selection mode")
	}

	sprint := mgr.CurrentSprint()
	if sprint == nil {
		t.Fatal("no current sprint")
	}
	// 5-pt priority-1 story first, then the 30-pt one still fits in 40.
	if len(sprint.Stories) != 2 || sprint.Stories[0] != "US-002" {
		t.Errorf("stories = %v, want [US-002 US-001]", sprint.Stories)
	}
}

func TestPlanSprintTool_ExplicitSelection(t *testing.T) {
	mgr := testManager(t)
	create := NewCreateStoryTool(mgr)
	plan := NewPlanSprintTool(mgr)

	createStory(t, create, map[string]interface{}{
		"title": "Huge", "description": "d", "story_points": float64(99),
	})

	result, _ := plan.Handle(context.Background(), newRequest(map[string]interface{}{
		"goal":      "Forced scope",
		"story_ids": "US-001",
	}))
	text := getResultText(result)
	if !strings.Contains(text, "capacity not enforced") {
		t.Error("response should state the explicit-selection mode")
	}

	sprint := mgr.CurrentSprint()
	if len(sprint.Stories) != 1 || sprint.Stories[0] != "US-001" {
		t.Errorf("stories = %v, want [US-001]", sprint.Stories)
	}
}

func TestPlanSprintTool_BlankStoryIDsMeansAuto(t *testing.T) {
	mgr := testManager(t)
	create := NewCreateStoryTool(mgr)
	plan := NewPlanSprintTool(mgr)

	createStory(t, create, map[string]interface{}{
		"title": "Fits", "description": "d", "story_points": float64(3),
	})

	result, _ := plan.Handle(context.Background(), newRequest(map[string]interface{}{
		"goal":      "g",
		"story_ids": "   ",
	}))
	if !strings.Contains(getResultText(result), "auto-selected") {
		t.Error("blank story_ids should fall back to auto-selection")
	}
	if got := mgr.CurrentSprint().Stories; len(got) != 1 {
		t.Errorf("stories = %v, want the one fitting story", got)
	}
}

func TestPlanSprintTool_MissingGoal(t *testing.T) {
	plan := NewPlanSprintTool(testManager(t))

	result, _ := plan.Handle(context.Background(), newRequest(map[string]interface{}{}))
	if !isErrorResult(result) {
		t.Error("missing goal should yield an error result")
	}
}

// --- RecordResultTool ---

func TestRecordResultTool_Defaults(t *testing.T) {
	mgr := testManager(t)
	NewPlanSprintTool(mgr).Handle(context.Background(), newRequest(map[string]interface{}{
		"goal": "g",
	}))

	tool := NewRecordResultTool(mgr)
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"summary": "delivered the feature",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error: %s", getResultText(result))
	}

	if mgr.Status().SprintHistoryCount != 1 {
		t.Fatal("history should hold one record")
	}
}

func TestRecordResultTool_FailedStatus(t *testing.T) {
	mgr := testManager(t)
	tool := NewRecordResultTool(mgr)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"summary": "blocked on flaky tests",
		"status":  "failed",
	}))
	if isErrorResult(result) {
		t.Fatalf("unexpected error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "failed") {
		t.Error("response should echo the failed status")
	}
}

func TestRecordResultTool_InvalidStatus(t *testing.T) {
	tool := NewRecordResultTool(testManager(t))

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"summary": "s",
		"status":  "partial",
	}))
	if !isErrorResult(result) {
		t.Error("invalid status should yield an error result")
	}
}

func TestRecordResultTool_MissingSummary(t *testing.T) {
	tool := NewRecordResultTool(testManager(t))

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{}))
	if !isErrorResult(result) {
		t.Error("missing summary should yield an error result")
	}
}

// --- TeamStatusTool ---

func TestTeamStatusTool_JSON(t *testing.T) {
	mgr := testManager(t)
	createStory(t, NewCreateStoryTool(mgr), map[string]interface{}{
		"title": "t", "description": "d",
	})

	result, err := NewTeamStatusTool(mgr).Handle(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	var status map[string]interface{}
	if err := json.Unmarshal([]byte(getResultText(result)), &status); err != nil {
		t.Fatalf("status should be valid JSON: %v", err)
	}
	if status["backlog_size"].(float64) != 1 {
		t.Errorf("backlog_size = %v, want 1", status["backlog_size"])
	}
	if status["current_sprint"] != nil {
		t.Error("current_sprint should be null before planning")
	}
	if _, ok := status["team_composition"].(map[string]interface{}); !ok {
		t.Error("team_composition should be an object")
	}
}

// --- ExportHistoryTool ---

func TestExportHistoryTool_ExplicitPath(t *testing.T) {
	mgr := testManager(t)
	path := filepath.Join(t.TempDir(), "out", "history.json")

	result, err := NewExportHistoryTool(mgr).Handle(context.Background(), newRequest(map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error: %s", getResultText(result))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := doc["team_config"]; !ok {
		t.Error("export should contain team_config")
	}
}

func TestExportHistoryTool_BadPath(t *testing.T) {
	mgr := testManager(t)

	// A directory as target makes the write fail.
	dir := t.TempDir()
	result, _ := NewExportHistoryTool(mgr).Handle(context.Background(), newRequest(map[string]interface{}{
		"path": dir,
	}))
	if !isErrorResult(result) {
		t.Error("unwritable path should yield an error result")
	}
}

// --- BriefingTool ---

func testBriefingTool(t *testing.T) *BriefingTool {
	t.Helper()
	renderer, err := roles.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewBriefingTool(testManager(t), renderer)
}

func TestBriefingTool_Planning(t *testing.T) {
	tool := testBriefingTool(t)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind":         "planning",
		"goal":         "Ship payments",
		"requirements": "Stripe integration with webhooks",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "SPRINT PLANNING SESSION") {
		t.Errorf("missing planning header:\n%s", text)
	}
	if !strings.Contains(text, "Ship payments") || !strings.Contains(text, "Stripe integration") {
		t.Error("briefing should embed goal and requirements")
	}
	if !strings.Contains(text, "40 story points") {
		t.Error("briefing should state the configured capacity")
	}
}

func TestBriefingTool_PlanningMissingFields(t *testing.T) {
	tool := testBriefingTool(t)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind": "planning",
		"goal": "only a goal",
	}))
	if !isErrorResult(result) {
		t.Error("planning without requirements should yield an error result")
	}
}

func TestBriefingTool_Execution(t *testing.T) {
	tool := testBriefingTool(t)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind":            "execution",
		"feature_request": "Add CSV import",
	}))
	text := getResultText(result)
	if !strings.Contains(text, "DEVELOPMENT SPRINT EXECUTION") {
		t.Errorf("missing execution header:\n%s", text)
	}
	if !strings.Contains(text, "Max Rounds: 10") {
		t.Error("execution briefing should default max rounds from config")
	}
}

func TestBriefingTool_ReviewDefaultCriteria(t *testing.T) {
	tool := testBriefingTool(t)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind":      "review",
		"code_path": "./internal/payments",
	}))
	text := getResultText(result)
	if !strings.Contains(text, "CODE REVIEW SESSION") {
		t.Errorf("missing review header:\n%s", text)
	}
	if !strings.Contains(text, "Security best practices") {
		t.Error("review briefing should fall back to default criteria")
	}
}

func TestBriefingTool_Retrospective(t *testing.T) {
	tool := testBriefingTool(t)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind": "retrospective",
	}))
	if !strings.Contains(getResultText(result), "SPRINT RETROSPECTIVE") {
		t.Error("missing retrospective header")
	}
}

func TestBriefingTool_InvalidKind(t *testing.T) {
	tool := testBriefingTool(t)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"kind": "standup",
	}))
	if !isErrorResult(result) {
		t.Error("unknown kind should yield an error result")
	}
}
