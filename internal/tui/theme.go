package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarning  lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBorder)
	focusedFieldStyle = fieldStyle.BorderForeground(colorAccent)
)

// help renders "[key] desc" pairs.
func help(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += "  "
		}
		out += keyStyle.Render("["+pairs[i]+"]") + " " + helpDescStyle.Render(pairs[i+1])
	}
	return out
}
