// Package cli wires the docflow commands together.
//
// The CLI surface is small: `init` scaffolds a project workflow, `ai`
// generates the instruction for a "stage action" command, and `guide` renders
// the workflow help. All commands operate on the working directory as the
// project root.
//
// Key types:
//   - [App] - Shared command dependencies (working directory, logger)
//   - [Execute] - Entry point returning the process exit code
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docflow/internal/config"
	"docflow/internal/logging"
)

// Version is the docflow release version reported by --version.
const Version = "0.2.0"

// App carries the dependencies shared by all commands.
type App struct {
	// WorkDir is the project root; commands resolve every path against it.
	WorkDir string

	// Log receives diagnostics. Warnings (such as unresolved template
	// variables) go here so stdout stays clean for instruction output.
	Log *zap.Logger
}

// NewRootCommand builds the docflow root command with all subcommands
// attached.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "docflow",
		Short: "Template-driven document workflow for AI-assisted development",
		Long: `Docflow drives a multi-stage document workflow (prd -> arch -> research ->
blueprint -> task) whose documents are authored by an AI assistant.

Each stage has a template with per-action prompts; docflow resolves the
template, substitutes the document paths, and prints the instruction the
assistant should follow.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitCommand(app),
		newAICommand(app),
		newGuideCommand(app),
	)
	return root
}

// Execute runs the CLI against the current working directory and returns the
// process exit code: 0 on success, 1 on any caught error.
func Execute() int {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to determine working directory: %v\n", err)
		return 1
	}

	log := logging.New(config.LogLevel(workDir))
	defer log.Sync()

	app := &App{WorkDir: workDir, Log: log}
	if err := NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code, ok := IsExitError(err); ok {
			return code
		}
		return 1
	}
	return 0
}
