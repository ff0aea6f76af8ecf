// devcrew: Agent Dev Team MCP Server
//
// A universal MCP server that gives any AI coding tool an agile dev team:
// backlog management, capacity-constrained sprint planning, group-chat
// briefings, and a development toolkit.
//
// Usage:
//
//	devcrew serve    # Start MCP server (stdio transport)
//	devcrew init     # Write a default devcrew.yaml in the current directory
//	devcrew roles    # Print the team role descriptions
//	devcrew update   # Update to the latest release
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/mvilela/devcrew/internal/config"
	"github.com/mvilela/devcrew/internal/roles"
	devserver "github.com/mvilela/devcrew/internal/server"
	"github.com/mvilela/devcrew/internal/updater"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "devcrew",
	Short: "Agent dev team MCP server",
	Long: `devcrew runs an agile software team for AI coding tools over MCP.

It manages a product backlog, plans sprints within a point capacity, renders
the group-chat briefings for each team session, and exposes a development
toolkit (codebase analysis, quality checks, HTTP, browser, SQLite, metrics).

Add it to your AI tool's MCP config:

  {
    "mcpServers": {
      "devcrew": {
        "command": "devcrew",
        "args": ["serve"]
      }
    }
  }`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := devserver.New(devserver.Options{Debug: debug})
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		// Best-effort version check. Prints to stderr so it doesn't
		// interfere with MCP's stdio transport on stdout.
		go notifyIfOutdated()

		return server.ServeStdio(s)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update devcrew to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		result := updater.Check(devserver.Version)
		if !result.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "Already at the latest version (v%s)\n", result.CurrentVersion)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updating v%s → v%s...\n", result.CurrentVersion, result.LatestVersion)
		if err := updater.SelfUpdate(devserver.Version); err != nil {
			return fmt.Errorf("update failed: %w (download manually from %s)", err, result.ReleaseURL)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated to v%s. Restart devcrew to use the new version.\n", result.LatestVersion)
		return nil
	},
}

// notifyIfOutdated prints an update notice to stderr when a newer release
// exists. Network failures are silently ignored.
func notifyIfOutdated() {
	result := updater.Check(devserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s → v%s\n  Run: devcrew update\n\n",
			result.CurrentVersion, result.LatestVersion,
		)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default devcrew.yaml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		if _, err := os.Stat(config.Path(dir)); err == nil {
			return fmt.Errorf("%s already exists", config.ConfigFile)
		}

		if err := config.NewFileStore().Save(dir, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.Path(dir))
		return nil
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Print the team role descriptions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, role := range roles.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n\n", role, role.Description())
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the devcrew version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "devcrew v%s\n", devserver.Version)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, initCmd, rolesCmd, updateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
