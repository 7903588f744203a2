package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docflow/internal/config"
	"docflow/internal/processor"
)

// Markers bounding the instruction block on stdout. Integration command
// files tell the assistant to follow whatever appears between them.
const (
	InstructionStartMarker = "[AI_INSTRUCTION_START]"
	InstructionEndMarker   = "[AI_INSTRUCTION_END]"
)

func newAICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ai "<stage> <action>"`,
		Short: "Generate the AI instruction for a stage action",
		Long: `Generate the instruction for a workflow stage and action and print it to
stdout between fixed markers.

The single argument combines stage and action, as passed through by the
assistant integrations:

  docflow ai "prd build"
  docflow ai "arch continue"
  docflow ai "task run"

The build action also writes the stage's initial document from the template
body.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.Fields(args[0])
			if len(parts) != 2 {
				return fmt.Errorf(`invalid command format: expected "<stage> <action>", got %q (examples: "prd build", "arch continue")`, args[0])
			}
			stage, action := parts[0], parts[1]

			cfg, err := config.NewLoader(app.WorkDir).Load()
			if err != nil {
				return err
			}

			proc, err := processor.New(cfg, app.WorkDir, app.Log)
			if err != nil {
				return err
			}

			instruction, err := proc.Process(stage, action)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n%s\n",
				InstructionStartMarker, instruction, InstructionEndMarker)
			return nil
		},
	}
}
