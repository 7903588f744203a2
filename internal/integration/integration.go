// Package integration scaffolds project files for AI assistant integrations.
//
// Each supported tool gets a single command file copied from the embedded
// assets into its conventional location (.claude/commands/docflow.md,
// .gemini/commands/docflow.toml, and so on). Existing files are left alone
// unless force is requested.
//
// Key types:
//   - [Tool] - Static description of one assistant integration
//   - [Installer] - Copies workflow and integration files into a project
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"docflow/internal/assets"
	"docflow/internal/config"
)

// Tool describes a supported AI assistant integration.
type Tool struct {
	// Name is the human-readable tool name shown in prompts.
	Name string

	// ToolDir is the tool's dot directory at the project root.
	ToolDir string

	// CommandsDir is the subdirectory holding command files.
	CommandsDir string

	// FileName is the installed command file name, extension included.
	FileName string

	// Asset is the embedded integration file to copy.
	Asset string

	// NextSteps are the post-init hints printed for this tool.
	NextSteps []string
}

// Tools maps tool keys to their integration descriptions.
var Tools = map[string]Tool{
	"claude": {
		Name:        "Claude Code",
		ToolDir:     ".claude",
		CommandsDir: "commands",
		FileName:    "docflow.md",
		Asset:       "claude.md",
		NextSteps: []string{
			"Execute `claude` to start Claude Code",
			"Use the `/docflow help` command to learn the current flow",
		},
	},
	"gemini": {
		Name:        "Gemini CLI",
		ToolDir:     ".gemini",
		CommandsDir: "commands",
		FileName:    "docflow.toml",
		Asset:       "gemini.toml",
		NextSteps: []string{
			"Execute `gemini` to start Gemini CLI",
			"Use the `/docflow help` command to learn the current flow",
		},
	},
	"cursor": {
		Name:        "Cursor",
		ToolDir:     ".cursor",
		CommandsDir: "commands",
		FileName:    "docflow.md",
		Asset:       "cursor.md",
		NextSteps: []string{
			"Execute `cursor .` to open the project in Cursor",
			"Use Ctrl+K then `/docflow help` to learn the current flow",
		},
	},
	"copilot": {
		Name:        "GitHub Copilot",
		ToolDir:     ".github",
		CommandsDir: "prompts",
		FileName:    "docflow.prompt.md",
		Asset:       "copilot.prompt.md",
		NextSteps: []string{
			"Open the project in your IDE with GitHub Copilot installed",
			"Use `#docflow help` in a prompt to learn the current flow",
		},
	},
}

// Names returns the supported tool keys with "claude" first and the rest
// sorted, matching the order offered during interactive init.
func Names() []string {
	var names []string
	for name := range Tools {
		if name != "claude" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"claude"}, names...)
}

// Installer copies workflow and integration files into a project.
//
// Create with [NewInstaller]. All paths are relative to the project base
// directory passed at construction.
type Installer struct {
	base string
	log  *zap.Logger
}

// NewInstaller creates an [Installer] rooted at the project directory.
func NewInstaller(base string, log *zap.Logger) *Installer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Installer{base: base, log: log}
}

// InstallWorkflow writes the named workflow configuration and the stage
// templates it references under .docflow/workflow, overriding the configured
// language. Existing files are skipped unless force is set.
func (i *Installer) InstallWorkflow(configName, language string, force bool) error {
	source, err := assets.WorkflowConfig(configName)
	if err != nil {
		return err
	}

	templatesDir := filepath.Join(i.base, filepath.FromSlash(config.WorkflowTemplatesDir))
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create workflow directory: %w", err)
	}

	configPath := filepath.Join(i.base, filepath.FromSlash(config.WorkflowConfigPath))
	if fileExists(configPath) && !force {
		i.log.Info("workflow config already exists, skipping",
			zap.String("path", config.WorkflowConfigPath))
	} else {
		data, err := workflowConfigWithLanguage(source, language)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write workflow config: %w", err)
		}
		i.log.Info("created workflow config",
			zap.String("config", configName),
			zap.String("path", config.WorkflowConfigPath))
	}

	for _, name := range templateNames(source) {
		target := filepath.Join(templatesDir, name+".md")
		if fileExists(target) && !force {
			i.log.Info("template already exists, skipping", zap.String("template", name))
			continue
		}
		data, err := assets.Template(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write template %s: %w", name, err)
		}
		i.log.Info("created template", zap.String("template", name))
	}
	return nil
}

// InstallIntegration copies the command file for the given tool into its
// conventional location. Returns false when the file already existed and
// force was not set.
func (i *Installer) InstallIntegration(tool string, force bool) (bool, error) {
	t, ok := Tools[tool]
	if !ok {
		return false, fmt.Errorf("unsupported tool %q (supported: %v)", tool, Names())
	}

	target := filepath.Join(i.base, t.ToolDir, t.CommandsDir, t.FileName)
	if fileExists(target) && !force {
		i.log.Info("integration already exists, skipping",
			zap.String("tool", t.Name))
		return false, nil
	}

	data, err := assets.Integration(t.Asset)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("failed to create integration directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write integration file: %w", err)
	}

	i.log.Info("created integration",
		zap.String("tool", t.Name),
		zap.String("path", filepath.Join(t.ToolDir, t.CommandsDir, t.FileName)))
	return true, nil
}

// Installed reports whether the project already has a workflow configuration.
func (i *Installer) Installed() bool {
	return fileExists(filepath.Join(i.base, filepath.FromSlash(config.WorkflowConfigPath)))
}

// workflowConfigWithLanguage rewrites an embedded configuration with the
// chosen language. The YAML round-trip keeps the config file as the single
// source of defaults.
func workflowConfigWithLanguage(source []byte, language string) ([]byte, error) {
	var cfg map[string]any
	if err := yaml.Unmarshal(source, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded workflow config: %w", err)
	}
	if language != "" {
		cfg["language"] = language
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render workflow config: %w", err)
	}
	return out, nil
}

// templateNames extracts the deduplicated, sorted template names referenced by
// the define section of a workflow configuration.
func templateNames(source []byte) []string {
	var cfg struct {
		Define map[string]struct {
			Template string `yaml:"template"`
		} `yaml:"define"`
	}
	if err := yaml.Unmarshal(source, &cfg); err != nil {
		return nil
	}

	seen := make(map[string]bool, len(cfg.Define))
	var names []string
	for _, def := range cfg.Define {
		if def.Template == "" || seen[def.Template] {
			continue
		}
		seen[def.Template] = true
		names = append(names, def.Template)
	}
	sort.Strings(names)
	return names
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
