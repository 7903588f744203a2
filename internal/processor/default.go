package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"docflow/internal/config"
	"docflow/internal/template"
	"docflow/internal/workspace"
)

// pathSymbolPrefix marks input symbols that resolve to a prior-stage document
// path inside the target directory (e.g. PATH_PRD -> {targetDir}/prd.md).
const pathSymbolPrefix = "PATH_"

// instructionSeparator sits between the system preamble and the action prompt.
const instructionSeparator = "\n\n===\n\n"

// fallbackInstructionFormat is the degraded-but-functional instruction used
// when the template defines no prompt for the requested action. It embeds
// stage, action, language and target path and never fails.
const fallbackInstructionFormat = `You are working on the %s stage with %s action.

Language: %s
Target Document: %s

Please proceed with the %s operation for %s stage.
Follow the guidelines and update the target document accordingly.`

// defaultProcessor is the full-pipeline variant.
type defaultProcessor struct {
	cfg     *config.Config
	workDir string
	ws      *workspace.Workspace
	log     *zap.Logger
}

func newDefaultProcessor(cfg *config.Config, workDir string, log *zap.Logger) *defaultProcessor {
	return &defaultProcessor{
		cfg:     cfg,
		workDir: workDir,
		ws:      workspace.New(workDir, cfg.FirstStage()),
		log:     log,
	}
}

// Process implements the command pipeline.
//
// Hard failures are limited to stage validation and template presence;
// everything downstream degrades gracefully (missing prompt -> fallback
// instruction, unresolved variable -> warning plus literal placeholder).
func (p *defaultProcessor) Process(stage, action string) (string, error) {
	if !p.cfg.HasStage(stage) {
		return "", fmt.Errorf("%w: %q (available stages: %s)",
			ErrInvalidStage, stage, strings.Join(p.cfg.Stages, ", "))
	}

	stageDef, ok := p.cfg.Define[stage]
	if !ok {
		return "", fmt.Errorf("%w: no definition for stage %q", ErrInvalidStage, stage)
	}
	if stageDef.Template == "" {
		return "", fmt.Errorf("%w: no template configured for stage %q", ErrInvalidStage, stage)
	}

	targetDir, err := p.ws.Resolve(stage)
	if err != nil {
		return "", err
	}
	targetDocument := workspace.DocumentPath(targetDir, stage)

	tmpl, err := p.loadTemplate(stageDef.Template)
	if err != nil {
		return "", err
	}

	prompt, ok := tmpl.ActionPrompt(action)
	if !ok {
		p.log.Debug("no prompt for action, using fallback instruction",
			zap.String("stage", stage),
			zap.String("action", action))
		return fmt.Sprintf(fallbackInstructionFormat,
			stage, action, p.cfg.Language, targetDocument, action, stage), nil
	}

	vars := p.resolveSymbols(stageDef.InputSymbols, targetDir)
	vars["TARGET_DOCUMENT"] = targetDocument
	vars["STAGE"] = stage
	vars["ACTION"] = action
	vars["LANGUAGE"] = p.cfg.Language

	instruction := SystemPreamble(p.cfg.Language) +
		instructionSeparator +
		template.Substitute(prompt, vars, p.log)

	if action == ActionBuild {
		if err := p.writeTargetDocument(targetDocument, targetDir, tmpl.Body); err != nil {
			return "", err
		}
	}
	return instruction, nil
}

// HelpContent returns the workflow guide assembled from the configuration.
func (p *defaultProcessor) HelpContent() string {
	return fmt.Sprintf(`%s

== Docflow Workflow ==

**Language:** %s
**Available Stages:** %s

**How to run this workflow?**
%s
`,
		SystemPreamble(p.cfg.Language),
		p.cfg.Language,
		strings.Join(p.cfg.Stages, ", "),
		p.cfg.Help)
}

func (p *defaultProcessor) loadTemplate(name string) (*template.Template, error) {
	path := filepath.Join(p.workDir, filepath.FromSlash(config.WorkflowTemplatesDir), name+".md")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: workflow template %s (run 'docflow init' to set up the project workflow)",
			ErrNotFound, path)
	}
	return template.Parse(path)
}

// resolveSymbols maps the stage's declared input symbols to document paths
// inside the target directory. PATH_{STAGE} symbols resolve to that stage's
// document; anything else resolves to {symbol-lowercased}.md.
func (p *defaultProcessor) resolveSymbols(symbols []string, targetDir string) map[string]string {
	vars := make(map[string]string, len(symbols)+4)
	for _, symbol := range symbols {
		name := symbol
		if strings.HasPrefix(symbol, pathSymbolPrefix) {
			name = strings.TrimPrefix(symbol, pathSymbolPrefix)
		}
		vars[symbol] = workspace.DocumentPath(targetDir, strings.ToLower(name))
	}
	return vars
}

// writeTargetDocument writes the template body as the initial stage document,
// filling in the document-path and language placeholders for every configured
// stage. Creates or overwrites the file.
func (p *defaultProcessor) writeTargetDocument(targetDocument, targetDir, body string) error {
	context := make(map[string]string, len(p.cfg.Stages)+1)
	for _, stage := range p.cfg.Stages {
		symbol := pathSymbolPrefix + strings.ToUpper(stage)
		context[symbol] = workspace.DocumentPath(targetDir, stage)
	}
	context["LANGUAGE"] = p.cfg.Language

	content := template.Fill(body, context)
	if err := os.WriteFile(targetDocument, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write target document: %w", err)
	}
	return nil
}
