package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style of the dashboard.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Panel         lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
}

func newTheme(primary, secondary, fg, subtle, border, muted, success, warning, errColor, info string) Theme {
	status := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	return Theme{
		Primary:   lipgloss.Color(primary),
		Secondary: lipgloss.Color(secondary),
		Muted:     lipgloss.Color(muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),

		StatusSuccess: status(success),
		StatusWarning: status(warning),
		StatusError:   status(errColor),
		StatusInfo:    status(info),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme("#7c3aed", "#a78bfa", "#fafafa", "#a3a3a3", "#404040", "#737373",
	"#10b981", "#f59e0b", "#ef4444", "#3b82f6")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme("#cba6f7", "#f5c2e7", "#cdd6f4", "#a6adc8", "#45475a", "#6c7086",
	"#a6e3a1", "#f9e2af", "#f38ba8", "#89dceb")

// ThemeByName resolves a theme name from configuration or flags.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "catppuccin", "mocha":
		return CatppuccinMocha, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}
