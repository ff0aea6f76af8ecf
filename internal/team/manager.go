package team

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the backlog, the current sprint, and the sprint history for
// one project. All state is private to the instance — there are no
// package-level globals, so multiple managers can coexist (one per project).
//
// Handlers may call into the manager concurrently (the MCP server does not
// serialize tool calls), so every operation takes the single instance lock.
// Planning is a read-modify-write over the backlog and the current sprint
// and must stay one critical section.
type Manager struct {
	mu sync.Mutex

	id          string
	projectPath string
	cfg         SprintConfig
	roster      map[string]string // role -> agent name

	backlog []UserStory
	current *Sprint
	history []SprintResult
	planned int // sprints ever planned, survives current-sprint replacement

	log *zap.Logger
}

// Options configures a new Manager. Zero-value fields fall back to
// defaults: cwd-less empty project path is kept as-is, a nil logger becomes
// a no-op logger, and an unset sprint config becomes DefaultSprintConfig.
type Options struct {
	ProjectPath string
	Config      SprintConfig
	Roster      map[string]string
	Logger      *zap.Logger
}

// NewManager creates an empty manager for one project.
func NewManager(opts Options) *Manager {
	cfg := opts.Config
	if cfg.CapacityPoints == 0 && cfg.DurationDays == 0 {
		cfg = DefaultSprintConfig()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	roster := make(map[string]string, len(opts.Roster))
	for role, name := range opts.Roster {
		roster[role] = name
	}

	m := &Manager{
		id:          uuid.NewString(),
		projectPath: opts.ProjectPath,
		cfg:         cfg,
		roster:      roster,
		log:         log,
	}
	m.log.Info("team manager initialized",
		zap.String("team_id", m.id),
		zap.String("project", m.projectPath),
		zap.Int("capacity", m.cfg.CapacityPoints),
	)
	return m
}

// ID returns the manager's instance identifier.
func (m *Manager) ID() string { return m.id }

// Config returns the sprint planning policy.
func (m *Manager) Config() SprintConfig { return m.cfg }

// ProjectPath returns the project directory the manager was created for.
func (m *Manager) ProjectPath() string { return m.projectPath }

// --- Story creation ---

// CreateStory appends a new story to the backlog and returns a copy of it.
//
// The identifier is derived from the backlog length at creation time
// ("US-%03d"), which is only unique because stories are never removed or
// reordered — the backlog is append-only by construction.
//
// No input validation is applied: zero or negative points and priorities
// are accepted as given. Callers are trusted; defaults for omitted values
// live at the tool layer where "omitted" is observable.
func (m *Manager) CreateStory(title, description string, criteria []string, points, priority int) UserStory {
	m.mu.Lock()
	defer m.mu.Unlock()

	story := UserStory{
		ID:                 fmt.Sprintf("US-%03d", len(m.backlog)+1),
		Title:              title,
		Description:        description,
		AcceptanceCriteria: append([]string(nil), criteria...),
		StoryPoints:        points,
		Priority:           priority,
		Status:             StatusBacklog,
		CreatedAt:          timeNow(),
	}
	m.backlog = append(m.backlog, story)

	m.log.Info("user story created",
		zap.String("id", story.ID),
		zap.String("title", title),
		zap.Int("points", points),
	)
	return story
}

// --- Sprint planning ---

// PlanSprint creates a new sprint and makes it the current one, replacing
// any prior current sprint (the displaced record is not archived here).
//
// When selected is nil, stories are auto-selected: eligible stories (status
// exactly "backlog") are walked in priority order (ascending, stable with
// respect to backlog order for ties) and greedily taken while they fit the
// remaining capacity. A story that doesn't fit is skipped and never
// reconsidered — this is a single pass, not a knapsack solve.
//
// When selected is non-nil (including empty), it is used verbatim: no
// capacity or eligibility check is applied to an explicit selection. This
// asymmetry is deliberate and preserved from the original behavior.
//
// Every selected ID that matches a backlog story moves that story to
// "sprint_backlog"; unknown IDs are silently ignored.
func (m *Manager) PlanSprint(goal string, selected []string) Sprint {
	m.mu.Lock()
	defer m.mu.Unlock()

	if selected == nil {
		selected = m.autoSelect()
	}

	m.planned++
	now := timeNow()
	sprint := Sprint{
		ID:        fmt.Sprintf("Sprint-%d", m.planned),
		Goal:      goal,
		Stories:   append([]string(nil), selected...),
		StartDate: now,
		EndDate:   now.Add(time.Duration(m.cfg.DurationDays) * 24 * time.Hour),
		Phase:     PhasePlanning,
		Capacity:  m.cfg.CapacityPoints,
	}
	m.current = &sprint

	for _, id := range selected {
		for i := range m.backlog {
			if m.backlog[i].ID == id {
				m.backlog[i].Status = StatusSprintBacklog
			}
		}
	}

	m.log.Info("sprint planned",
		zap.String("id", sprint.ID),
		zap.String("goal", goal),
		zap.Int("stories", len(selected)),
	)
	return copySprint(sprint)
}

// autoSelect returns the greedy capacity-constrained selection.
// Caller must hold m.mu.
func (m *Manager) autoSelect() []string {
	available := m.cfg.CapacityPoints

	// Stable sort keeps backlog order for equal priorities, which makes
	// the selection reproducible.
	order := make([]int, len(m.backlog))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return m.backlog[order[a]].Priority < m.backlog[order[b]].Priority
	})

	var selected []string
	for _, idx := range order {
		story := &m.backlog[idx]
		if story.Status != StatusBacklog {
			continue
		}
		if story.StoryPoints > available {
			continue
		}
		selected = append(selected, story.ID)
		available -= story.StoryPoints
	}
	return selected
}

// --- History ---

// RecordSprintResult appends an opaque execution record to the sprint
// history. This is the hook the surrounding system calls after a group-chat
// run; the planner itself never writes history.
func (m *Manager) RecordSprintResult(rec SprintResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, rec)
	m.log.Info("sprint result recorded", zap.Int("history_count", len(m.history)))
}

// --- Read access ---

// Backlog returns a copy of the full backlog in creation order.
func (m *Manager) Backlog() []UserStory {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]UserStory, len(m.backlog))
	for i, s := range m.backlog {
		out[i] = s
		out[i].AcceptanceCriteria = append([]string(nil), s.AcceptanceCriteria...)
	}
	return out
}

// Story returns a copy of the story with the given ID, or false.
func (m *Manager) Story(id string) (UserStory, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.backlog {
		if s.ID == id {
			s.AcceptanceCriteria = append([]string(nil), s.AcceptanceCriteria...)
			return s, true
		}
	}
	return UserStory{}, false
}

// CurrentSprint returns a copy of the current sprint, or nil if no sprint
// has been planned yet.
func (m *Manager) CurrentSprint() *Sprint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	s := copySprint(*m.current)
	return &s
}

// Status returns the team summary used by the status tool, the status
// resource, and the team_config section of exports.
func (m *Manager) Status() TeamStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

// statusLocked builds the status snapshot. Caller must hold m.mu.
func (m *Manager) statusLocked() TeamStatus {
	roster := make(map[string]string, len(m.roster))
	for role, name := range m.roster {
		roster[role] = name
	}

	var current *Sprint
	if m.current != nil {
		s := copySprint(*m.current)
		current = &s
	}

	return TeamStatus{
		TeamID:             m.id,
		TeamComposition:    roster,
		CurrentSprint:      current,
		BacklogSize:        len(m.backlog),
		SprintHistoryCount: len(m.history),
		ProjectPath:        m.projectPath,
		SprintConfig:       m.cfg,
	}
}

func copySprint(s Sprint) Sprint {
	s.Stories = append([]string(nil), s.Stories...)
	return s
}
