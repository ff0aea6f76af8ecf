// Package config loads and persists the devcrew.yaml project configuration:
// sprint policy overrides, roster display names, quality-check tool list,
// and scrape settings. A missing file is not an error — defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mvilela/devcrew/internal/roles"
	"github.com/mvilela/devcrew/internal/team"
)

// ConfigFile is the configuration filename at the project root. Its
// presence also marks a directory as a devcrew project root.
const ConfigFile = "devcrew.yaml"

// SprintSettings mirrors team.SprintConfig in YAML form. Zero fields fall
// back to the team defaults; the boolean flags use pointers so that an
// explicit "false" is distinguishable from "unset".
type SprintSettings struct {
	DurationDays       int      `yaml:"duration_days"`
	CapacityPoints     int      `yaml:"capacity_points"`
	FocusAreas         []string `yaml:"focus_areas"`
	MaxRounds          int      `yaml:"max_rounds"`
	AutoTesting        *bool    `yaml:"auto_testing"`
	CodeReviewRequired *bool    `yaml:"code_review_required"`
}

// QualitySettings configures the dev_quality_check tool.
type QualitySettings struct {
	Tools []string `yaml:"tools"`
}

// ScrapeSettings configures the dev_scrape_page tool.
type ScrapeSettings struct {
	Headless  bool `yaml:"headless"`
	TimeoutMS int  `yaml:"timeout_ms"`
}

// Config is the root of devcrew.yaml.
type Config struct {
	Project string            `yaml:"project"`
	Sprint  SprintSettings    `yaml:"sprint"`
	Roster  map[string]string `yaml:"roster"` // role -> display name overrides
	Quality QualitySettings   `yaml:"quality"`
	Scrape  ScrapeSettings    `yaml:"scrape"`
}

// Default returns the configuration used when no devcrew.yaml exists.
func Default() *Config {
	return &Config{
		Quality: QualitySettings{Tools: []string{"vet", "gofmt", "staticcheck"}},
		Scrape:  ScrapeSettings{Headless: true, TimeoutMS: 30000},
	}
}

// SprintConfig converts the YAML sprint settings into the team policy,
// applying defaults for unset fields.
func (c *Config) SprintConfig() team.SprintConfig {
	cfg := team.DefaultSprintConfig()
	if c.Sprint.DurationDays > 0 {
		cfg.DurationDays = c.Sprint.DurationDays
	}
	if c.Sprint.CapacityPoints > 0 {
		cfg.CapacityPoints = c.Sprint.CapacityPoints
	}
	if len(c.Sprint.FocusAreas) > 0 {
		cfg.FocusAreas = c.Sprint.FocusAreas
	}
	if c.Sprint.MaxRounds > 0 {
		cfg.MaxRounds = c.Sprint.MaxRounds
	}
	if c.Sprint.AutoTesting != nil {
		cfg.AutoTesting = *c.Sprint.AutoTesting
	}
	if c.Sprint.CodeReviewRequired != nil {
		cfg.CodeReviewRequired = *c.Sprint.CodeReviewRequired
	}
	return cfg
}

// TeamRoster returns the default role roster with any configured display
// name overrides applied. Unknown roster keys are kept as extra entries —
// custom agents are allowed.
func (c *Config) TeamRoster() map[string]string {
	roster := roles.DefaultRoster()
	for role, name := range c.Roster {
		roster[role] = name
	}
	return roster
}

// --- Store ---

// Store defines the persistence interface for project configuration.
// Abstracted for testability.
type Store interface {
	Load(projectRoot string) (*Config, error)
	Save(projectRoot string, cfg *Config) error
}

// FileStore implements Store using devcrew.yaml on the local filesystem.
type FileStore struct{}

// NewFileStore creates a filesystem-backed config store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Path returns the absolute path to a project's devcrew.yaml.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, ConfigFile)
}

// Load reads devcrew.yaml from the project root. A missing file yields the
// default configuration without error.
func (fs *FileStore) Load(projectRoot string) (*Config, error) {
	data, err := os.ReadFile(Path(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	return cfg, nil
}

// Save writes the configuration to the project root.
func (fs *FileStore) Save(projectRoot string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(Path(projectRoot), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return nil
}

// FindProjectRoot walks up from the current working directory looking for
// a devcrew.yaml. If none is found, the original cwd is returned — tools
// then operate with default configuration.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		if _, err := os.Stat(Path(current)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
