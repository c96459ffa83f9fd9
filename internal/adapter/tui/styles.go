package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/thermal-trace/internal/config"
)

// Glyphs drawn on the map.
const (
	glyphPoint  = "●"
	glyphPath   = "·"
	glyphMarker = "◎"
	glyphLegend = "█"
)

type styles struct {
	title    lipgloss.Style
	status   lipgloss.Style
	path     lipgloss.Style
	marker   lipgloss.Style
	logRow   lipgloss.Style
	logHover lipgloss.Style
	dim      lipgloss.Style
	tooltip  lipgloss.Style
	errText  lipgloss.Style
	divider  lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	fg := lipgloss.Color(theme.Foreground)
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Background)).
			Background(lipgloss.Color(theme.Path)).
			Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(fg),
		path:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Path)),
		marker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)),
		logRow: lipgloss.NewStyle().Foreground(fg),
		logHover: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Background)).
			Background(lipgloss.Color(theme.Hover)),
		dim:     lipgloss.NewStyle().Faint(true),
		tooltip: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Hover)),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
		divider: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Path)),
	}
}

// pointStyle colours a map point with its temperature colour.
func pointStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
