package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrNotFound is a sentinel error indicating the workflow configuration file
// does not exist. Running `docflow init` is the remediation.
var ErrNotFound = errors.New("workflow configuration not found")

// Loader loads workflow configuration files with Viper.
//
// Create with [NewLoader]. Load resolves the configuration location (env
// override first, then the project-relative default) and unmarshals it into
// an immutable [Config].
type Loader struct {
	workDir string
}

// NewLoader creates a [Loader] for the given project working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{workDir: workDir}
}

// Load reads the workflow configuration.
//
// The DOCFLOW_CONFIG_PATH environment variable overrides the default
// project-relative location. Returns [ErrNotFound] when the file is missing.
func (l *Loader) Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = filepath.Join(l.workDir, filepath.FromSlash(WorkflowConfigPath))
	}
	return l.LoadFile(path)
}

// LoadFile reads the workflow configuration from an explicit path.
func (l *Loader) LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w at %s (run 'docflow init' to set up the project workflow)",
			ErrNotFound, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read workflow config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse workflow config: %w", err)
	}

	if len(cfg.Stages) == 0 {
		return nil, fmt.Errorf("workflow config %s defines no stages", path)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("controller", "default")
	v.SetDefault("logging", "warn")
}

// LogLevel returns the configured log level for the project at workDir,
// falling back to "warn" when the configuration is missing or unreadable.
// Used to configure logging before command dispatch; errors here are
// deliberately swallowed so a broken config still reports through the CLI
// error path rather than the logger setup.
func LogLevel(workDir string) string {
	cfg, err := NewLoader(workDir).Load()
	if err != nil || cfg.Logging == "" {
		return "warn"
	}
	return cfg.Logging
}
