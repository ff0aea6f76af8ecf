package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvilela/devcrew/internal/roles"
)

// --- Default ---

func TestDefault_QualityTools(t *testing.T) {
	cfg := Default()
	if len(cfg.Quality.Tools) == 0 {
		t.Fatal("default config should list quality tools")
	}
	if cfg.Quality.Tools[0] != "vet" {
		t.Errorf("first quality tool = %s, want vet", cfg.Quality.Tools[0])
	}
	if !cfg.Scrape.Headless {
		t.Error("scraping should default to headless")
	}
}

// --- SprintConfig conversion ---

func TestSprintConfig_AllDefaults(t *testing.T) {
	got := Default().SprintConfig()
	if got.DurationDays != 14 {
		t.Errorf("DurationDays = %d, want 14", got.DurationDays)
	}
	if got.CapacityPoints != 40 {
		t.Errorf("CapacityPoints = %d, want 40", got.CapacityPoints)
	}
	if !got.AutoTesting || !got.CodeReviewRequired {
		t.Error("boolean flags should default to true")
	}
}

func TestSprintConfig_Overrides(t *testing.T) {
	f := false
	cfg := &Config{Sprint: SprintSettings{
		DurationDays:   7,
		CapacityPoints: 30,
		FocusAreas:     []string{"security"},
		MaxRounds:      15,
		AutoTesting:    &f,
	}}

	got := cfg.SprintConfig()
	if got.DurationDays != 7 || got.CapacityPoints != 30 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.FocusAreas[0] != "security" {
		t.Errorf("FocusAreas = %v, want [security]", got.FocusAreas)
	}
	if got.MaxRounds != 15 {
		t.Errorf("MaxRounds = %d, want 15", got.MaxRounds)
	}
	if got.AutoTesting {
		t.Error("explicit auto_testing: false should stick")
	}
	if !got.CodeReviewRequired {
		t.Error("unset code_review_required should stay true")
	}
}

// --- TeamRoster ---

func TestTeamRoster_DefaultsPlusOverrides(t *testing.T) {
	cfg := &Config{Roster: map[string]string{
		"scrum_master": "maria",
		"archaeology":  "indiana", // custom role is kept
	}}

	roster := cfg.TeamRoster()
	if roster["scrum_master"] != "maria" {
		t.Errorf("scrum_master = %s, want maria", roster["scrum_master"])
	}
	if roster[string(roles.RoleProductOwner)] != string(roles.RoleProductOwner) {
		t.Error("non-overridden roles should keep default names")
	}
	if roster["archaeology"] != "indiana" {
		t.Error("custom roster entries should be kept")
	}
}

// --- FileStore ---

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewFileStore().Load(dir)
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(cfg.Quality.Tools) == 0 {
		t.Error("missing file should yield default config")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore()

	in := Default()
	in.Project = "devcrew-demo"
	in.Sprint.CapacityPoints = 25
	in.Roster = map[string]string{"qa_engineer": "quinn"}

	if err := fs.Save(dir, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := fs.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Project != "devcrew-demo" {
		t.Errorf("Project = %s, want devcrew-demo", out.Project)
	}
	if out.Sprint.CapacityPoints != 25 {
		t.Errorf("CapacityPoints = %d, want 25", out.Sprint.CapacityPoints)
	}
	if out.Roster["qa_engineer"] != "quinn" {
		t.Errorf("roster override lost: %v", out.Roster)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("project: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore().Load(dir); err == nil {
		t.Error("malformed YAML should fail to load")
	}
}

func TestPath(t *testing.T) {
	got := Path("/home/user/project")
	want := filepath.Join("/home/user/project", ConfigFile)
	if got != want {
		t.Errorf("Path = %s, want %s", got, want)
	}
}

// --- FindProjectRoot ---

func TestFindProjectRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(Path(root), []byte("project: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	// Resolve symlinks — macOS TempDir lives under /private.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("root = %s, want %s", got, root)
	}
}
