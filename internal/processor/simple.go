package processor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docflow/internal/config"
)

// simpleProcessor shares the default pipeline but presents the condensed
// guide for reduced workflows (prd -> blueprint -> task, no architecture or
// research stages).
type simpleProcessor struct {
	*defaultProcessor
}

func newSimpleProcessor(cfg *config.Config, workDir string, log *zap.Logger) *simpleProcessor {
	return &simpleProcessor{
		defaultProcessor: newDefaultProcessor(cfg, workDir, log),
	}
}

// HelpContent returns the fixed guide for the simplified workflow.
func (p *simpleProcessor) HelpContent() string {
	return fmt.Sprintf(`%s

== Docflow Simple Workflow ==

Language: %s
Available Stages: %s

Simplified Workflow:
1. PRD (Product Requirements Document)
   - Use 'prd build' to create product requirements

2. Blueprint Document
   - Use 'blueprint build' to create the implementation blueprint

3. Task Document & Implementation
   - Use 'task build' to break down implementation tasks
   - Use 'task run' to implement the planned tasks

Stage Actions:
  build - Create/build the document for the stage
  run   - Execute the implementation (for the task stage)

This simplified workflow focuses on the essential stages for faster development cycles.
`,
		SystemPreamble(p.cfg.Language),
		p.cfg.Language,
		strings.Join(p.cfg.Stages, ", "))
}
