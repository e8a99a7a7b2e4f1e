// Package theme defines the color palettes used by the debtpath dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Default is the theme used when the configured name is unknown.
const Default = "flexoki-dark"

// Theme is a named palette. Chrome colors draw the frame; money colors give
// every view the same reading of balances, interest and payoffs.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // active tab
	Border       lipgloss.Color
	BorderBright lipgloss.Color
	BorderAccent lipgloss.Color // focused card
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Balance   lipgloss.Color // remaining principal
	Interest  lipgloss.Color // interest accrued or paid
	PaidOff   lipgloss.Color // cleared debts and payoff months
	Shortfall lipgloss.Color // debts the plan never clears
	Warning   lipgloss.Color // budget and input problems
	Highlight lipgloss.Color // the recommended strategy
}

// MoneyRoles returns the money colors in a fixed order.
func (t Theme) MoneyRoles() []lipgloss.Color {
	return []lipgloss.Color{t.Balance, t.Interest, t.PaidOff, t.Shortfall, t.Warning, t.Highlight}
}

var flexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderBright: "#575653",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",

	Balance:   "#4385BE",
	Interest:  "#CE5D97",
	PaidOff:   "#879A39",
	Shortfall: "#D14D41",
	Warning:   "#DA702C",
	Highlight: "#D0A215",
}

var catppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderBright: "#7F849C",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#94E2D5",
	AccentBright: "#B4D0FB",

	Balance:   "#89B4FA",
	Interest:  "#F5C2E7",
	PaidOff:   "#A6E3A1",
	Shortfall: "#F38BA8",
	Warning:   "#FAB387",
	Highlight: "#F9E2AF",
}

var tokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#343A52",
	Border:       "#565F89",
	BorderBright: "#7982A9",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7DCFFF",
	AccentBright: "#A9C1FF",

	Balance:   "#7AA2F7",
	Interest:  "#BB9AF7",
	PaidOff:   "#9ECE6A",
	Shortfall: "#F7768E",
	Warning:   "#FF9E64",
	Highlight: "#E0AF68",
}

// terminal sticks to the 16 ANSI colors.
var terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderBright: "7",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",

	Balance:   "4",
	Interest:  "5",
	PaidOff:   "2",
	Shortfall: "1",
	Warning:   "3",
	Highlight: "11",
}

// All lists the themes in display order.
var All = []Theme{flexokiDark, catppuccinMocha, tokyoNight, terminal}

// Active is the theme every view renders with.
var Active = flexokiDark

// Lookup returns the theme called name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Known reports whether name matches a theme.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// SetActive switches to the named theme, or to Default when the name is
// unknown.
func SetActive(name string) {
	t, ok := Lookup(name)
	if !ok {
		t, _ = Lookup(Default)
	}
	Active = t
}
