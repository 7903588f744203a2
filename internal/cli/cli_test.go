package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docflow/internal/config"
	"docflow/internal/integration"
	"docflow/internal/processor"
	"docflow/internal/workspace"
)

// runCommand executes the root command against workDir with the given
// arguments, feeding stdin for interactive prompts.
func runCommand(t *testing.T, workDir, stdin string, args ...string) (string, error) {
	t.Helper()

	app := &App{WorkDir: workDir, Log: zap.NewNop()}
	root := NewRootCommand(app)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func initProject(t *testing.T, workDir string) {
	t.Helper()
	installer := integration.NewInstaller(workDir, nil)
	require.NoError(t, installer.InstallWorkflow("default", "en", false))
}

func TestInit_NonInteractive(t *testing.T) {
	workDir := t.TempDir()

	out, err := runCommand(t, workDir, "", "init", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	assert.FileExists(t, filepath.Join(workDir, filepath.FromSlash(config.WorkflowConfigPath)))
	assert.FileExists(t, filepath.Join(workDir, ".claude", "commands", "docflow.md"))

	cfg, err := config.NewLoader(workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
}

func TestInit_FlagsSelectToolAndLanguage(t *testing.T) {
	workDir := t.TempDir()

	out, err := runCommand(t, workDir, "", "init", "--yes", "--tool", "gemini", "--language", "ja")
	require.NoError(t, err)
	assert.Contains(t, out, "Gemini CLI")

	assert.FileExists(t, filepath.Join(workDir, ".gemini", "commands", "docflow.toml"))

	cfg, err := config.NewLoader(workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Language)
}

func TestInit_SimpleConfig(t *testing.T) {
	workDir := t.TempDir()

	_, err := runCommand(t, workDir, "", "init", "--yes", "--config", "simple")
	require.NoError(t, err)

	cfg, err := config.NewLoader(workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "simple", cfg.Controller)
	assert.Equal(t, []string{"prd", "blueprint", "task"}, cfg.Stages)
}

func TestInit_UnsupportedConfig(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "init", "--yes", "--config", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported workflow config")
}

func TestInit_UnsupportedTool(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "init", "--yes", "--tool", "zed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tool")
}

func TestInit_InteractivePrompts(t *testing.T) {
	workDir := t.TempDir()

	// Accept the default workflow, pick the last listed tool, then enter
	// a language.
	names := integration.Names()
	stdin := fmt.Sprintf("\n%d\nzh-TW\n", len(names))

	out, err := runCommand(t, workDir, stdin, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Select workflow configuration")
	assert.Contains(t, out, "Select target platform")

	last := integration.Tools[names[len(names)-1]]
	assert.FileExists(t, filepath.Join(workDir, last.ToolDir, last.CommandsDir, last.FileName))

	cfg, err := config.NewLoader(workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "zh-TW", cfg.Language)
}

func TestInit_InteractiveDefaults(t *testing.T) {
	workDir := t.TempDir()

	// Empty answers accept the defaults (default workflow, claude, en).
	_, err := runCommand(t, workDir, "\n\n\n", "init")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(workDir, ".claude", "commands", "docflow.md"))

	cfg, err := config.NewLoader(workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
}

func TestAI_GeneratesInstruction(t *testing.T) {
	workDir := t.TempDir()
	initProject(t, workDir)

	out, err := runCommand(t, workDir, "", "ai", "prd build")
	require.NoError(t, err)

	assert.Contains(t, out, InstructionStartMarker)
	assert.Contains(t, out, InstructionEndMarker)
	assert.Contains(t, out, filepath.Join(workspace.DefaultDocsDir, "001_initialization", "prd.md"))

	// The instruction block sits between the markers.
	start := strings.Index(out, InstructionStartMarker)
	end := strings.Index(out, InstructionEndMarker)
	require.GreaterOrEqual(t, start, 0)
	assert.Greater(t, end, start)
}

func TestAI_BuildWritesDocument(t *testing.T) {
	workDir := t.TempDir()
	initProject(t, workDir)

	_, err := runCommand(t, workDir, "", "ai", "prd build")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(workDir, workspace.DefaultDocsDir, "001_initialization", "prd.md"))
}

func TestAI_InvalidFormat(t *testing.T) {
	workDir := t.TempDir()
	initProject(t, workDir)

	_, err := runCommand(t, workDir, "", "ai", "prd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command format")

	_, err = runCommand(t, workDir, "", "ai", "prd build extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command format")
}

func TestAI_UninitializedProject(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "ai", "prd build")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestAI_InvalidStage(t *testing.T) {
	workDir := t.TempDir()
	initProject(t, workDir)

	_, err := runCommand(t, workDir, "", "ai", "nonexistent build")
	require.Error(t, err)
	assert.ErrorIs(t, err, processor.ErrInvalidStage)
}

func TestGuide_Raw(t *testing.T) {
	workDir := t.TempDir()
	initProject(t, workDir)

	out, err := runCommand(t, workDir, "", "guide", "--raw")
	require.NoError(t, err)

	assert.Contains(t, out, "Docflow Workflow")
	assert.Contains(t, out, "prd, arch, research, blueprint, task")
	assert.Contains(t, out, "Global Rules")
}

func TestGuide_Uninitialized(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "guide")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestExitError(t *testing.T) {
	err := NewExitError(3)
	assert.Equal(t, "exit status 3", err.Error())

	code, ok := IsExitError(err)
	assert.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = IsExitError(nil)
	assert.False(t, ok)
}
