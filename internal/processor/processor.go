// Package processor turns (stage, action) commands into AI instructions.
//
// The processor is the orchestration core of docflow: it validates the stage
// against the workflow configuration, resolves the target document directory,
// loads the stage template, extracts the action's prompt, substitutes the
// variable context, and assembles the final instruction handed to the AI
// assistant. For the build action it also writes the template body to the
// target document, the only file mutation in the flow besides directory
// creation.
//
// Processor variants form a small closed set selected by the workflow
// configuration's controller key:
//   - "default" - the full pipeline described above
//   - "simple" - same pipeline with a condensed guide for reduced workflows
//
// Key types:
//   - [Processor] - Interface over the variants
//   - [New] - Compile-time registry mapping controller names to variants
package processor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docflow/internal/config"
)

// Recognized action names. Any other action string follows the generic
// fallback instruction path rather than failing.
const (
	// ActionBuild creates the stage document from the template body and is
	// the only action with a filesystem side effect.
	ActionBuild = "build"

	// ActionContinue resumes work on an existing stage document.
	ActionContinue = "continue"

	// ActionRun executes the plan captured in a stage document.
	ActionRun = "run"
)

// Sentinel errors for command processing.
var (
	// ErrInvalidStage indicates the requested stage is not in the configured
	// stage list. The fix is to check the workflow configuration.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrNotFound indicates a required template or prior-stage directory is
	// missing. Running an earlier step or `docflow init` is the remediation.
	ErrNotFound = errors.New("not found")
)

// Processor generates AI instructions for stage/action commands.
type Processor interface {
	// Process runs the command pipeline and returns the final instruction
	// string to hand to the AI assistant.
	Process(stage, action string) (string, error)

	// HelpContent returns the workflow guide for the configured processor.
	HelpContent() string
}

// New returns the [Processor] variant named by cfg.Controller.
//
// The variant set is closed at compile time; unknown names are rejected here
// rather than resolved dynamically.
func New(cfg *config.Config, workDir string, log *zap.Logger) (Processor, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Controller {
	case "", "default":
		return newDefaultProcessor(cfg, workDir, log), nil
	case "simple":
		return newSimpleProcessor(cfg, workDir, log), nil
	default:
		return nil, fmt.Errorf("unknown controller %q (supported: default, simple)", cfg.Controller)
	}
}

// SystemPreamble returns the fixed language-directive preamble prepended to
// every generated instruction.
func SystemPreamble(language string) string {
	return fmt.Sprintf(systemPreambleFormat, language)
}

const systemPreambleFormat = `
**Global Rules**:
**RULE1:** You MUST use %q as your preferred language for following conversation and documentation. However, use English for code (including comments) and web search queries.
`
