package cmd

import "github.com/charmbracelet/lipgloss"

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("32"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// statusText renders a status code for terminal output.
func statusText(failed bool, text string) string {
	if failed {
		return failStyle.Render(text)
	}
	return okStyle.Render(text)
}
