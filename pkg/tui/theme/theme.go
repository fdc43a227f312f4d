package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shelflife/pkg/urgency"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Urgency UrgencyTheme
	Footer  FooterTheme
	Panel   PanelTheme
}

// UrgencyTheme holds one style per urgency color token.
type UrgencyTheme struct {
	Muted   lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
	Caution lipgloss.Style
	Safe    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Urgency: UrgencyTheme{
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			Caution: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Safe:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Level returns the style for an urgency color token.
func (t Theme) Level(c urgency.Color) lipgloss.Style {
	switch c {
	case urgency.ColorDanger:
		return t.Urgency.Danger
	case urgency.ColorWarning:
		return t.Urgency.Warning
	case urgency.ColorCaution:
		return t.Urgency.Caution
	case urgency.ColorSafe:
		return t.Urgency.Safe
	default:
		return t.Urgency.Muted
	}
}
