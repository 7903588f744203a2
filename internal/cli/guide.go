package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"docflow/internal/config"
	"docflow/internal/processor"
)

func newGuideCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the workflow guide for this project",
		Long: `Render the configured workflow's guide: the language directive, the stage
list, and the how-to-run help text from the workflow configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(app.WorkDir).Load()
			if err != nil {
				return err
			}

			proc, err := processor.New(cfg, app.WorkDir, app.Log)
			if err != nil {
				return err
			}

			content := proc.HelpContent()
			if !raw {
				if rendered, err := renderMarkdown(content); err == nil {
					content = rendered
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the guide without markdown rendering")
	return cmd
}

func renderMarkdown(content string) (string, error) {
	// Fixed style rather than auto-detection; terminal probing can stall on
	// some terminals.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}
