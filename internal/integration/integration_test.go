package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/config"
)

func TestNames(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "claude", names[0])
	assert.ElementsMatch(t, []string{"claude", "gemini", "cursor", "copilot"}, names)
}

func TestInstallWorkflow(t *testing.T) {
	base := t.TempDir()
	inst := NewInstaller(base, nil)

	require.False(t, inst.Installed())
	require.NoError(t, inst.InstallWorkflow("default", "ja", false))
	assert.True(t, inst.Installed())

	cfg, err := config.NewLoader(base).Load()
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "prd", cfg.FirstStage())

	for _, stage := range cfg.Stages {
		assert.FileExists(t,
			filepath.Join(base, filepath.FromSlash(config.WorkflowTemplatesDir),
				cfg.Define[stage].Template+".md"))
	}
}

func TestInstallWorkflow_SimpleConfig(t *testing.T) {
	base := t.TempDir()
	inst := NewInstaller(base, nil)

	require.NoError(t, inst.InstallWorkflow("simple", "en", false))

	cfg, err := config.NewLoader(base).Load()
	require.NoError(t, err)
	assert.Equal(t, "simple", cfg.Controller)
	assert.Equal(t, []string{"prd", "blueprint", "task"}, cfg.Stages)
	assert.Equal(t, "blueprint_simple", cfg.Define["blueprint"].Template)

	templatesDir := filepath.Join(base, filepath.FromSlash(config.WorkflowTemplatesDir))
	assert.FileExists(t, filepath.Join(templatesDir, "blueprint_simple.md"))
	assert.NoFileExists(t, filepath.Join(templatesDir, "arch.md"))
}

func TestInstallWorkflow_UnknownConfig(t *testing.T) {
	err := NewInstaller(t.TempDir(), nil).InstallWorkflow("nope", "en", false)
	assert.Error(t, err)
}

func TestInstallWorkflow_SkipsExistingWithoutForce(t *testing.T) {
	base := t.TempDir()
	inst := NewInstaller(base, nil)
	require.NoError(t, inst.InstallWorkflow("default", "en", false))

	configPath := filepath.Join(base, filepath.FromSlash(config.WorkflowConfigPath))
	require.NoError(t, os.WriteFile(configPath, []byte("stages:\n  - custom\n"), 0o644))

	require.NoError(t, inst.InstallWorkflow("default", "en", false))
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom")

	require.NoError(t, inst.InstallWorkflow("default", "en", true))
	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "custom")
}

func TestInstallIntegration(t *testing.T) {
	base := t.TempDir()
	inst := NewInstaller(base, nil)

	created, err := inst.InstallIntegration("claude", false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, filepath.Join(base, ".claude", "commands", "docflow.md"))

	// Second install is a no-op without force.
	created, err = inst.InstallIntegration("claude", false)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = inst.InstallIntegration("claude", true)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestInstallIntegration_AllTools(t *testing.T) {
	base := t.TempDir()
	inst := NewInstaller(base, nil)

	wantPaths := map[string]string{
		"claude":  ".claude/commands/docflow.md",
		"gemini":  ".gemini/commands/docflow.toml",
		"cursor":  ".cursor/commands/docflow.md",
		"copilot": ".github/prompts/docflow.prompt.md",
	}

	for tool, rel := range wantPaths {
		created, err := inst.InstallIntegration(tool, false)
		require.NoError(t, err, tool)
		assert.True(t, created, tool)
		assert.FileExists(t, filepath.Join(base, filepath.FromSlash(rel)))
	}
}

func TestInstallIntegration_UnknownTool(t *testing.T) {
	_, err := NewInstaller(t.TempDir(), nil).InstallIntegration("zed", false)
	assert.Error(t, err)
}
