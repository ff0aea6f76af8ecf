// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mvilela/devcrew/internal/config"
	"github.com/mvilela/devcrew/internal/logging"
	"github.com/mvilela/devcrew/internal/prompts"
	"github.com/mvilela/devcrew/internal/resources"
	"github.com/mvilela/devcrew/internal/roles"
	"github.com/mvilela/devcrew/internal/team"
	"github.com/mvilela/devcrew/internal/teamtools"
	"github.com/mvilela/devcrew/internal/toolkit"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Options configures server construction.
type Options struct {
	Debug bool
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function flushes the logger and must be called on
// shutdown (typically via defer). It is always non-nil.
func New(opts Options) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	logger, err := logging.New(opts.Debug)
	if err != nil {
		return nil, noop, fmt.Errorf("creating logger: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return nil, cleanup, fmt.Errorf("finding project root: %w", err)
	}

	cfg, err := config.NewFileStore().Load(projectRoot)
	if err != nil {
		return nil, cleanup, fmt.Errorf("loading configuration: %w", err)
	}
	logger.Info("configuration loaded",
		zap.String("project_root", projectRoot),
		zap.Int("capacity", cfg.SprintConfig().CapacityPoints),
	)

	renderer, err := roles.NewRenderer()
	if err != nil {
		return nil, cleanup, fmt.Errorf("creating briefing renderer: %w", err)
	}

	mgr := team.NewManager(team.Options{
		ProjectPath: projectRoot,
		Config:      cfg.SprintConfig(),
		Roster:      cfg.TeamRoster(),
		Logger:      logger.Named("team"),
	})

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"devcrew",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register team tools ---

	createStory := teamtools.NewCreateStoryTool(mgr)
	s.AddTool(createStory.Definition(), createStory.Handle)

	planSprint := teamtools.NewPlanSprintTool(mgr)
	s.AddTool(planSprint.Definition(), planSprint.Handle)

	recordResult := teamtools.NewRecordResultTool(mgr)
	s.AddTool(recordResult.Definition(), recordResult.Handle)

	teamStatus := teamtools.NewTeamStatusTool(mgr)
	s.AddTool(teamStatus.Definition(), teamStatus.Handle)

	exportHistory := teamtools.NewExportHistoryTool(mgr)
	s.AddTool(exportHistory.Definition(), exportHistory.Handle)

	briefing := teamtools.NewBriefingTool(mgr, renderer)
	s.AddTool(briefing.Definition(), briefing.Handle)

	// --- Register development toolkit ---

	analyzeCodebase := toolkit.NewAnalyzeCodebaseTool()
	s.AddTool(analyzeCodebase.Definition(), analyzeCodebase.Handle)

	qualityCheck := toolkit.NewQualityCheckTool(cfg.Quality.Tools)
	s.AddTool(qualityCheck.Definition(), qualityCheck.Handle)

	httpRequest := toolkit.NewHTTPRequestTool()
	s.AddTool(httpRequest.Definition(), httpRequest.Handle)

	scrapePage := toolkit.NewScrapePageTool(toolkit.ScrapeOptions{
		Headless: cfg.Scrape.Headless,
		Timeout:  time.Duration(cfg.Scrape.TimeoutMS) * time.Millisecond,
	})
	s.AddTool(scrapePage.Definition(), scrapePage.Handle)

	sqlQuery := toolkit.NewSQLQueryTool()
	s.AddTool(sqlQuery.Definition(), sqlQuery.Handle)

	dbSchema := toolkit.NewDBSchemaTool()
	s.AddTool(dbSchema.Definition(), dbSchema.Handle)

	systemMetrics := toolkit.NewSystemMetricsTool()
	s.AddTool(systemMetrics.Definition(), systemMetrics.Handle)

	// --- Register prompts ---

	kickoff := prompts.NewKickoffPrompt()
	s.AddPrompt(kickoff.Definition(), kickoff.Handle)

	standup := prompts.NewStandupPrompt()
	s.AddPrompt(standup.Definition(), standup.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(mgr)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)
	s.AddResource(resourceHandler.BacklogResource(), resourceHandler.HandleBacklog)

	logger.Info("server wired", zap.String("version", Version))
	return s, cleanup, nil
}

// noop is the default cleanup used before the logger exists.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to run a dev team with devcrew.
func serverInstructions() string {
	return `You have access to devcrew, an agile dev team MCP server. It manages a
product backlog, plans capacity-constrained sprints, and renders the group-chat
briefings that drive each team session. The team has six roles: product owner,
scrum master, senior developer, QA engineer, DevOps engineer, and tech architect.

## WORKFLOW

1. BACKLOG — break the user's request into user stories with team_create_story.
   Write real acceptance criteria and honest story point estimates. Lower
   priority numbers are more urgent (1 = must-have).

2. PLAN — call team_plan_sprint with a concise goal. Auto-selection takes the
   highest-priority stories that fit the capacity. Pass story_ids only when the
   user explicitly fixes the scope — explicit selections skip the capacity check.

3. BRIEF — render the session briefing with team_briefing (planning, execution,
   review, or retrospective) and run the session in your group chat. The sprint
   is complete when the scrum master says SPRINT_COMPLETE!.

4. RECORD — after each session, call team_record_result with a summary so the
   sprint history stays accurate. Export everything with team_export_history.

## DEVELOPMENT TOOLKIT

During sprint execution the team can use:
- dev_analyze_codebase / dev_quality_check for code work
- dev_http_request for APIs, dev_scrape_page for JavaScript-heavy pages
- dev_sql_query / dev_db_schema for SQLite databases
- dev_system_metrics when performance questions come up

## RULES

- NEVER call a tool with placeholder text — generate real content first.
- Keep sprints honest: do not overcommit past the capacity unless the user
  explicitly forces the scope.
- team_status before planning; team_record_result after every execution run.`
}
