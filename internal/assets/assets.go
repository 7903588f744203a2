// Package assets provides the embedded default workflows: the selectable
// workflow configurations, the stage templates they reference, and the
// per-tool integration command files installed by `docflow init`.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed workflow/configs/*.yaml
var configsFS embed.FS

//go:embed workflow/templates/*.md
var templatesFS embed.FS

//go:embed integrations/*
var integrationsFS embed.FS

// DefaultConfigName is the workflow configuration installed when no choice
// is made.
const DefaultConfigName = "default"

// WorkflowConfig returns the embedded workflow configuration with the given
// name (e.g. "default", "simple").
func WorkflowConfig(name string) ([]byte, error) {
	data, err := configsFS.ReadFile(path.Join("workflow/configs", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("embedded workflow config %q not found", name)
	}
	return data, nil
}

// ConfigNames returns the names of all embedded workflow configurations with
// "default" first and the rest sorted.
func ConfigNames() []string {
	names := listFS(configsFS, "workflow/configs", ".yaml")

	sorted := make([]string, 0, len(names))
	for _, name := range names {
		if name != DefaultConfigName {
			sorted = append(sorted, name)
		}
	}
	sort.Strings(sorted)
	return append([]string{DefaultConfigName}, sorted...)
}

// ConfigDescription returns the one-line description declared by the named
// workflow configuration, or "" when absent.
func ConfigDescription(name string) string {
	data, err := WorkflowConfig(name)
	if err != nil {
		return ""
	}

	var cfg struct {
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.Description
}

// Template returns the embedded template content with the given name.
// Template names come from the define section of a workflow configuration.
func Template(name string) ([]byte, error) {
	data, err := templatesFS.ReadFile(path.Join("workflow/templates", name+".md"))
	if err != nil {
		return nil, fmt.Errorf("embedded template %q not found", name)
	}
	return data, nil
}

// TemplateNames returns the names of all embedded templates, sorted.
func TemplateNames() []string {
	names := listFS(templatesFS, "workflow/templates", ".md")
	sort.Strings(names)
	return names
}

// Integration returns the embedded integration command file with the given
// file name (e.g. "claude.md").
func Integration(file string) ([]byte, error) {
	data, err := integrationsFS.ReadFile(path.Join("integrations", file))
	if err != nil {
		return nil, fmt.Errorf("embedded integration file %q not found", file)
	}
	return data, nil
}

func listFS(fsys embed.FS, dir, ext string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	return names
}
