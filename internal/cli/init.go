package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"docflow/internal/assets"
	"docflow/internal/integration"
)

const defaultLanguage = "en"

func newInitCommand(app *App) *cobra.Command {
	var (
		force      bool
		yes        bool
		tool       string
		language   string
		configName string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a docflow project in the current directory",
		Long: `Set up the project workflow: the workflow configuration and stage templates
under .docflow/workflow/, plus the command file for the chosen AI tool.

Without flags, init prompts for the workflow, tool and language interactively.
Existing files are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(app, cmd, initOptions{
				force:      force,
				yes:        yes,
				tool:       tool,
				language:   language,
				configName: configName,
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing workflow and integration files")
	cmd.Flags().BoolVar(&yes, "yes", false, "accept defaults without prompting")
	cmd.Flags().StringVar(&tool, "tool", "", "AI tool integration to install (claude, gemini, cursor, copilot)")
	cmd.Flags().StringVar(&language, "language", "", "preferred language for documents (e.g. en, zh-TW, ja)")
	cmd.Flags().StringVar(&configName, "config", "", "workflow configuration to install (default, simple)")
	return cmd
}

type initOptions struct {
	force      bool
	yes        bool
	tool       string
	language   string
	configName string
}

func runInit(app *App, cmd *cobra.Command, opts initOptions) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	installer := integration.NewInstaller(app.WorkDir, app.Log)
	if installer.Installed() && !opts.force {
		fmt.Fprintln(out, choiceStyle.Render(
			"Project already initialized; existing files will be kept (use --force to overwrite)."))
	}

	configName := opts.configName
	if configName == "" {
		if opts.yes {
			configName = assets.DefaultConfigName
		} else {
			var err error
			configName, err = promptConfig(out, in)
			if err != nil {
				return err
			}
		}
	}
	if _, err := assets.WorkflowConfig(configName); err != nil {
		return fmt.Errorf("unsupported workflow config %q (supported: %s)",
			configName, strings.Join(assets.ConfigNames(), ", "))
	}

	tool := opts.tool
	if tool == "" {
		if opts.yes {
			tool = integration.Names()[0]
		} else {
			var err error
			tool, err = promptTool(out, in)
			if err != nil {
				return err
			}
		}
	}
	if _, ok := integration.Tools[tool]; !ok {
		return fmt.Errorf("unsupported tool %q (supported: %s)",
			tool, strings.Join(integration.Names(), ", "))
	}

	language := opts.language
	if language == "" {
		if opts.yes {
			language = defaultLanguage
		} else {
			var err error
			language, err = promptLanguage(out, in)
			if err != nil {
				return err
			}
		}
	}

	if err := installer.InstallWorkflow(configName, language, opts.force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	if _, err := installer.InstallIntegration(tool, opts.force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, successStyle.Render("Docflow project initialized successfully!"))
	fmt.Fprintln(out, successStyle.Render("Next steps:"))
	for i, step := range integration.Tools[tool].NextSteps {
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%d. %s", i+1, step)))
	}
	fmt.Fprintln(out)
	return nil
}

// promptConfig asks the user to pick a workflow configuration from a numbered
// list. An empty answer selects the default workflow.
func promptConfig(out io.Writer, in *bufio.Reader) (string, error) {
	names := assets.ConfigNames()

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Select workflow configuration:"))
	for i, name := range names {
		label := name
		if desc := assets.ConfigDescription(name); desc != "" {
			label = fmt.Sprintf("%s - %s", name, desc)
		}
		fmt.Fprintln(out, choiceStyle.Render(fmt.Sprintf("%d. %s", i+1, label)))
	}

	for {
		fmt.Fprintf(out, "Enter choice (1-%d, default: 1): ", len(names))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return names[0], nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return names[0], nil
		}

		choice, convErr := strconv.Atoi(line)
		if convErr != nil || choice < 1 || choice > len(names) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d\n", len(names))
			continue
		}
		return names[choice-1], nil
	}
}

// promptTool asks the user to pick an AI tool from a numbered list.
// An empty answer selects the first option.
func promptTool(out io.Writer, in *bufio.Reader) (string, error) {
	names := integration.Names()

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Select target platform:"))
	for i, name := range names {
		fmt.Fprintln(out, choiceStyle.Render(
			fmt.Sprintf("%d. %s", i+1, integration.Tools[name].Name)))
	}

	for {
		fmt.Fprintf(out, "Enter choice (1-%d, default: 1): ", len(names))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			// EOF on stdin: fall back to the default choice.
			return names[0], nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return names[0], nil
		}

		choice, convErr := strconv.Atoi(line)
		if convErr != nil || choice < 1 || choice > len(names) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d\n", len(names))
			continue
		}
		return names[choice-1], nil
	}
}

// promptLanguage asks for the preferred document language, defaulting to en.
func promptLanguage(out io.Writer, in *bufio.Reader) (string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Enter preferred language (default: en):"))
	fmt.Fprintln(out, choiceStyle.Render("Examples: en, zh-TW, zh-CN, ja, ko"))
	fmt.Fprint(out, "Language: ")

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return defaultLanguage, nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultLanguage, nil
	}
	return line, nil
}
