package infra

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
)

// styles are bound to the reporter's renderer so colors match its writer.
type styles struct {
	box     lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	low     lipgloss.Style
	medium  lipgloss.Style
	high    lipgloss.Style
	section lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		title: r.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		label: r.NewStyle().
			Foreground(colorMuted).
			Width(labelWidth),
		value:   r.NewStyle(),
		muted:   r.NewStyle().Foreground(colorMuted),
		low:     r.NewStyle().Foreground(colorSecondary),
		medium:  r.NewStyle().Foreground(colorWarning),
		high:    r.NewStyle().Foreground(colorDanger).Bold(true),
		section: r.NewStyle().Bold(true).Foreground(colorPrimary).MarginTop(1),
	}
}
