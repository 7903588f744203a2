// Package config provides workflow configuration loading for docflow.
//
// The workflow configuration lives at .docflow/workflow/config.yaml inside the
// project and is loaded with Viper once per invocation. It is immutable during
// a run; docflow never writes it back.
//
// Key types:
//   - [Config] is the root configuration container
//   - [StageDef] defines a single stage's template and input symbols
//   - [Loader] handles Viper-based configuration loading
//
// Configuration resolution (highest to lowest):
//  1. DOCFLOW_CONFIG_PATH environment variable
//  2. Explicit path passed to [Loader.LoadFile]
//  3. .docflow/workflow/config.yaml under the working directory
package config

// WorkflowConfigPath is the project-relative path of the workflow
// configuration file.
const WorkflowConfigPath = ".docflow/workflow/config.yaml"

// WorkflowTemplatesDir is the project-relative directory holding the
// template files ({template}.md) referenced by the define section.
const WorkflowTemplatesDir = ".docflow/workflow/templates"

// EnvConfigPath is the environment variable that overrides the workflow
// configuration file location.
const EnvConfigPath = "DOCFLOW_CONFIG_PATH"

// Config represents the workflow configuration.
//
// Loaded by [Loader] and treated as read-only for the lifetime of a command.
type Config struct {
	// Language is the preferred language directive embedded in every
	// generated instruction (e.g. "en", "zh-TW", "ja").
	Language string `mapstructure:"language"`

	// Stages is the ordered list of workflow stage names. The first entry is
	// the workflow's initial stage; running it opens a new numbered
	// directory under the documents root.
	Stages []string `mapstructure:"stages"`

	// Define maps stage names to their definitions.
	Define map[string]StageDef `mapstructure:"define"`

	// Controller selects the command processor variant ("default" or
	// "simple"). Unknown names are rejected when the processor is built.
	Controller string `mapstructure:"controller"`

	// Help is free-form markdown describing how to drive the workflow,
	// rendered by the guide command and embedded in help instructions.
	Help string `mapstructure:"help"`

	// Logging is the minimum log level (debug, info, warn, error).
	Logging string `mapstructure:"logging"`
}

// StageDef defines a single workflow stage.
type StageDef struct {
	// Template is the template name associated with the stage.
	Template string `mapstructure:"template"`

	// InputSymbols lists variable names resolved to prior-stage document
	// paths, conventionally PATH_{STAGE} (e.g. PATH_PRD).
	InputSymbols []string `mapstructure:"input_symbols"`
}

// FirstStage returns the workflow's initial stage name, or "" when no stages
// are configured.
func (c *Config) FirstStage() string {
	if len(c.Stages) == 0 {
		return ""
	}
	return c.Stages[0]
}

// HasStage reports whether name is a member of the configured stage list.
func (c *Config) HasStage(name string) bool {
	for _, s := range c.Stages {
		if s == name {
			return true
		}
	}
	return false
}
