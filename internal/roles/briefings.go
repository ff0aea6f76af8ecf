package roles

import (
	"fmt"
	"strings"
	"text/template"
)

// BriefingKind selects which group-chat briefing to render.
type BriefingKind string

const (
	BriefingPlanning      BriefingKind = "planning"
	BriefingExecution     BriefingKind = "execution"
	BriefingReview        BriefingKind = "review"
	BriefingRetrospective BriefingKind = "retrospective"
)

// ValidateBriefingKind returns an error if the kind is not recognized.
func ValidateBriefingKind(k BriefingKind) error {
	if _, ok := briefingTemplates[k]; !ok {
		return fmt.Errorf("invalid briefing kind %q: must be one of: planning, execution, review, retrospective", k)
	}
	return nil
}

// PlanningData feeds the sprint planning session briefing.
type PlanningData struct {
	Goal         string
	Requirements string
	Capacity     int
	DurationDays int
}

// ExecutionData feeds the development sprint execution briefing.
type ExecutionData struct {
	FeatureRequest string
	ProjectPath    string
	MaxRounds      int
}

// ReviewData feeds the code review session briefing.
type ReviewData struct {
	CodePath string
	Criteria []string
}

// DefaultReviewCriteria is the criteria list applied when a review briefing
// is requested without explicit criteria.
func DefaultReviewCriteria() []string {
	return []string{
		"Code quality and maintainability",
		"Security best practices",
		"Performance optimization",
		"Test coverage and quality",
		"Documentation completeness",
		"Architecture alignment",
		"Error handling",
		"Code style consistency",
	}
}

// Renderer renders the group-chat briefings from embedded templates.
// The rendered text is the message handed to the external runtime's
// group chat; this layer never sends it anywhere.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses all briefing templates. It fails only on a template
// syntax error, which would be a programming bug.
func NewRenderer() (*Renderer, error) {
	root := template.New("briefings").Funcs(template.FuncMap{
		"bullets": func(items []string) string {
			var b strings.Builder
			for _, item := range items {
				b.WriteString("- ")
				b.WriteString(item)
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	})

	for kind, text := range briefingTemplates {
		if _, err := root.New(string(kind)).Parse(text); err != nil {
			return nil, fmt.Errorf("parsing %s briefing template: %w", kind, err)
		}
	}
	return &Renderer{tmpl: root}, nil
}

// Render produces the briefing text for the given kind. The data type must
// match the kind (PlanningData, ExecutionData, ReviewData; retrospective
// takes nil).
func (r *Renderer) Render(kind BriefingKind, data any) (string, error) {
	if err := ValidateBriefingKind(kind); err != nil {
		return "", err
	}
	if kind == BriefingReview {
		if rd, ok := data.(ReviewData); ok && len(rd.Criteria) == 0 {
			rd.Criteria = DefaultReviewCriteria()
			data = rd
		}
	}

	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, string(kind), data); err != nil {
		return "", fmt.Errorf("rendering %s briefing: %w", kind, err)
	}
	return b.String(), nil
}

var briefingTemplates = map[BriefingKind]string{
	BriefingPlanning: `🎯 SPRINT PLANNING SESSION

Sprint Goal: {{.Goal}}

Requirements: {{.Requirements}}

Team, let's conduct our sprint planning session. We need to:

1. **Product Owner**: Break down the requirements into detailed user stories with acceptance criteria
2. **Technical Architect**: Review technical approach and identify architectural considerations
3. **Senior Developer**: Estimate effort and identify technical dependencies
4. **QA Engineer**: Define testing strategy and quality criteria
5. **DevOps Engineer**: Identify deployment and infrastructure requirements
6. **Scrum Master**: Facilitate the discussion and ensure we have a solid plan

Please collaborate to create a comprehensive sprint plan. Focus on:
- Clear user stories with acceptance criteria
- Technical implementation approach
- Testing and quality assurance strategy
- Deployment and infrastructure needs
- Risk identification and mitigation

Sprint Capacity: {{.Capacity}} story points
Duration: {{.DurationDays}} days`,

	BriefingExecution: `🚀 DEVELOPMENT SPRINT EXECUTION

Feature Request: {{.FeatureRequest}}

Team, we're starting a development sprint to implement this feature. Let's work collaboratively:

**Sprint Process:**
1. **Sprint Planning** (Scrum Master leads)
   - Define user stories and acceptance criteria
   - Estimate effort and identify dependencies
   - Create sprint backlog

2. **Architecture & Design** (Tech Architect leads)
   - Design system architecture
   - Define interfaces and data models
   - Identify technical risks and mitigation strategies

3. **Implementation** (Senior Developer leads)
   - Implement core functionality
   - Follow coding standards and best practices
   - Create comprehensive documentation

4. **Quality Assurance** (QA Engineer leads)
   - Create and execute test plans
   - Perform functional and integration testing
   - Validate acceptance criteria

5. **Deployment Preparation** (DevOps Engineer leads)
   - Prepare deployment scripts and configuration
   - Set up monitoring and logging
   - Ensure security and compliance

6. **Sprint Review & Retrospective** (Scrum Master leads)
   - Review completed work
   - Identify lessons learned
   - Plan improvements for next sprint

**Sprint Goals:**
- Deliver working, tested software
- Meet all acceptance criteria
- Maintain high quality standards
- Document decisions and learnings

Project Path: {{.ProjectPath}}
Max Rounds: {{.MaxRounds}}

Let's begin! Scrum Master, please kick off our sprint planning.`,

	BriefingReview: `🔍 CODE REVIEW SESSION

Code Path: {{.CodePath}}

Team, let's conduct a thorough code review. Each role should contribute their expertise:

**Technical Architect**: Review architectural decisions, design patterns, and long-term maintainability
**Senior Developer**: Review code quality, algorithms, and implementation details
**QA Engineer**: Review testability, edge cases, and quality assurance aspects
**DevOps Engineer**: Review deployment readiness, security, and operational concerns
**Product Owner**: Verify feature completeness and user requirements fulfillment

**Review Criteria:**
{{bullets .Criteria}}

Please provide:
1. Specific feedback with file/line references where applicable
2. Severity levels (Critical, High, Medium, Low) for issues
3. Actionable recommendations for improvement
4. Positive recognition for good practices

Focus on constructive feedback that improves code quality and team learning.`,

	BriefingRetrospective: `🔄 SPRINT RETROSPECTIVE

Team, let's reflect on our recent sprint and identify opportunities for improvement.

Please share your thoughts on:

**What Went Well? (Continue)**
- What practices, processes, or behaviors should we continue?
- What contributed to our success?

**What Didn't Go Well? (Stop)**
- What challenges did we face?
- What should we stop doing or change?

**What Can We Improve? (Start)**
- What new practices should we try?
- How can we work more effectively together?

**Action Items**
- Specific, actionable improvements for the next sprint
- Who will be responsible for each action?

Let's have an open and honest discussion to continuously improve our team performance.`,
}
