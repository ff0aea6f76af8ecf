package roles

import (
	"strings"
	"testing"
)

// --- NewRenderer ---

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
}

// --- Render: planning ---

func TestRender_Planning(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	out, err := r.Render(BriefingPlanning, PlanningData{
		Goal:         "Ship the auth flow",
		Requirements: "OAuth login with session persistence",
		Capacity:     40,
		DurationDays: 14,
	})
	if err != nil {
		t.Fatalf("Render(planning) failed: %v", err)
	}

	checks := []string{
		"SPRINT PLANNING SESSION",
		"Sprint Goal: Ship the auth flow",
		"OAuth login with session persistence",
		"Sprint Capacity: 40 story points",
		"Duration: 14 days",
		"**Product Owner**",
		"**Scrum Master**",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("planning briefing missing: %q", check)
		}
	}
}

// --- Render: execution ---

func TestRender_Execution(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(BriefingExecution, ExecutionData{
		FeatureRequest: "Add CSV export",
		ProjectPath:    "/srv/app",
		MaxRounds:      15,
	})
	if err != nil {
		t.Fatalf("Render(execution) failed: %v", err)
	}

	checks := []string{
		"DEVELOPMENT SPRINT EXECUTION",
		"Feature Request: Add CSV export",
		"Project Path: /srv/app",
		"Max Rounds: 15",
		"Scrum Master, please kick off our sprint planning.",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("execution briefing missing: %q", check)
		}
	}
}

// --- Render: review ---

func TestRender_Review_ExplicitCriteria(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(BriefingReview, ReviewData{
		CodePath: "internal/auth",
		Criteria: []string{"Thread safety", "Input validation"},
	})
	if err != nil {
		t.Fatalf("Render(review) failed: %v", err)
	}
	if !strings.Contains(out, "Code Path: internal/auth") {
		t.Error("review briefing missing code path")
	}
	if !strings.Contains(out, "- Thread safety") || !strings.Contains(out, "- Input validation") {
		t.Errorf("review briefing missing criteria bullets:\n%s", out)
	}
}

func TestRender_Review_DefaultCriteria(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(BriefingReview, ReviewData{CodePath: "pkg/x"})
	if err != nil {
		t.Fatalf("Render(review) failed: %v", err)
	}
	for _, c := range DefaultReviewCriteria() {
		if !strings.Contains(out, "- "+c) {
			t.Errorf("review briefing missing default criterion: %q", c)
		}
	}
}

// --- Render: retrospective ---

func TestRender_Retrospective(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(BriefingRetrospective, nil)
	if err != nil {
		t.Fatalf("Render(retrospective) failed: %v", err)
	}
	checks := []string{
		"SPRINT RETROSPECTIVE",
		"What Went Well?",
		"What Didn't Go Well?",
		"Action Items",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("retrospective briefing missing: %q", check)
		}
	}
}

// --- Render: errors ---

func TestRender_UnknownKind(t *testing.T) {
	r, _ := NewRenderer()
	if _, err := r.Render(BriefingKind("standup"), nil); err == nil {
		t.Error("unknown briefing kind should fail")
	}
}
