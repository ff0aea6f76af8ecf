package team

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ExportFile is the default export filename within the project directory.
const ExportFile = "sprint_history.json"

// storyRecord is the export shape of a story — identical to UserStory
// except the creation timestamp is rendered as ISO-8601 text.
type storyRecord struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	AcceptanceCriteria []string    `json:"acceptance_criteria"`
	StoryPoints        int         `json:"story_points"`
	Priority           int         `json:"priority"`
	Status             StoryStatus `json:"status"`
	CreatedAt          string      `json:"created_at"`
}

// exportDocument is the top-level shape of the export file.
type exportDocument struct {
	TeamConfig    TeamStatus     `json:"team_config"`
	Backlog       []storyRecord  `json:"backlog"`
	SprintHistory []SprintResult `json:"sprint_history"`
	ExportedAt    string         `json:"exported_at"`
}

// ExportHistory writes the full team snapshot — status summary, backlog,
// and sprint history — as indented JSON to path. An empty path defaults to
// sprint_history.json inside the project directory. The write is a single
// os.WriteFile call; I/O errors propagate unretried.
func (m *Manager) ExportHistory(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		path = filepath.Join(m.projectPath, ExportFile)
	}

	doc := exportDocument{
		TeamConfig:    m.statusLocked(),
		Backlog:       make([]storyRecord, len(m.backlog)),
		SprintHistory: m.history,
		ExportedAt:    timeNow().Format(time.RFC3339),
	}
	if doc.SprintHistory == nil {
		doc.SprintHistory = []SprintResult{}
	}
	for i, s := range m.backlog {
		doc.Backlog[i] = storyRecord{
			ID:                 s.ID,
			Title:              s.Title,
			Description:        s.Description,
			AcceptanceCriteria: s.AcceptanceCriteria,
			StoryPoints:        s.StoryPoints,
			Priority:           s.Priority,
			Status:             s.Status,
			CreatedAt:          s.CreatedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	m.log.Info("sprint history exported", zap.String("path", path))
	return path, nil
}
