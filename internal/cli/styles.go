package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles for init output: gray for choices, yellow for the success
// summary, mirroring the tool's original color scheme.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
