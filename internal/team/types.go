// Package team implements the sprint backlog manager: a mutable collection
// of user stories, a greedy capacity-constrained sprint planner, and a JSON
// export of the full team state.
//
// The manager is pure bookkeeping. It produces the data (story lists, sprint
// goals) that the briefing layer turns into group-chat prompts, and it
// accepts the opaque execution records the surrounding system hands back.
// It has no awareness of the agent runtime itself.
package team

import "time"

// --- Story status ---

// StoryStatus tracks where a story is in its lifecycle. The manager only
// ever assigns StatusBacklog (at creation) and StatusSprintBacklog (at
// planning); further values are assigned by the surrounding system and
// carried through untouched.
type StoryStatus string

const (
	StatusBacklog       StoryStatus = "backlog"
	StatusSprintBacklog StoryStatus = "sprint_backlog"
)

// --- Sprint phase ---

// SprintPhase is the lifecycle phase of a sprint. Planning only ever sets
// PhasePlanning; the remaining phases exist for the execution records the
// surrounding system appends to history.
type SprintPhase string

const (
	PhasePlanning      SprintPhase = "planning"
	PhaseDevelopment   SprintPhase = "development"
	PhaseReview        SprintPhase = "review"
	PhaseTesting       SprintPhase = "testing"
	PhaseRetrospective SprintPhase = "retrospective"
	PhaseComplete      SprintPhase = "complete"
)

// --- Core data structures ---

// UserStory is a unit of requested work in the backlog.
type UserStory struct {
	ID                 string      `json:"id"` // "US-001"
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	AcceptanceCriteria []string    `json:"acceptance_criteria"`
	StoryPoints        int         `json:"story_points"` // relative effort
	Priority           int         `json:"priority"`     // lower = more urgent
	Status             StoryStatus `json:"status"`
	AssignedTo         string      `json:"assigned_to,omitempty"`
	CreatedAt          time.Time   `json:"created_at"` // set once at creation
}

// SprintConfig is the per-sprint planning policy. It is read, never
// mutated, by the planner.
type SprintConfig struct {
	DurationDays       int      `json:"duration_days"`
	CapacityPoints     int      `json:"capacity_points"`
	FocusAreas         []string `json:"focus_areas"`
	MaxRounds          int      `json:"max_rounds"` // collaboration-round budget per group chat
	AutoTesting        bool     `json:"auto_testing"`
	CodeReviewRequired bool     `json:"code_review_required"`
}

// DefaultSprintConfig returns the planning policy used when no overrides
// are configured: two-week sprints, 40 points of capacity.
func DefaultSprintConfig() SprintConfig {
	return SprintConfig{
		DurationDays:       14,
		CapacityPoints:     40,
		FocusAreas:         []string{"functionality", "quality", "performance"},
		MaxRounds:          10,
		AutoTesting:        true,
		CodeReviewRequired: true,
	}
}

// Sprint is the record produced by planning. Stories are referenced by ID;
// the backlog remains the sole owner of the story objects.
type Sprint struct {
	ID        string      `json:"id"` // "Sprint-1"
	Goal      string      `json:"goal"`
	Stories   []string    `json:"stories"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Phase     SprintPhase `json:"phase"`
	Capacity  int         `json:"capacity"` // capacity used for selection
}

// SprintResult is an opaque execution record appended to history by the
// surrounding system after a group-chat run. The manager stores and exports
// it without inspecting its shape.
type SprintResult map[string]any

// TeamStatus is the summary snapshot returned by Manager.Status and
// embedded in exports as team_config.
type TeamStatus struct {
	TeamID             string            `json:"team_id"`
	TeamComposition    map[string]string `json:"team_composition"` // role -> agent name
	CurrentSprint      *Sprint           `json:"current_sprint"`
	BacklogSize        int               `json:"backlog_size"`
	SprintHistoryCount int               `json:"sprint_history_count"`
	ProjectPath        string            `json:"project_path"`
	SprintConfig       SprintConfig      `json:"sprint_config"`
}
