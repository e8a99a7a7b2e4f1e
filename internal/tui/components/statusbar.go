package components

import (
	"strings"

	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is the plan summary shown on the right side of the status bar.
type Status struct {
	Strategy string
	Budget   string
	Source   string
	Warning  string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [t]strategy  [+/-]budget  [q]uit")

	var right []string
	if st.Warning != "" {
		right = append(right, warn.Render(st.Warning))
	}
	if st.Strategy != "" {
		right = append(right, accent.Render(st.Strategy))
	}
	if st.Budget != "" {
		right = append(right, base.Render(st.Budget+"/mo"))
	}
	if st.Source != "" {
		right = append(right, base.Render(st.Source))
	}
	rightStr := strings.Join(right, base.Render(" │ ")) + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}
