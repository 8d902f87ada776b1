package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#FF8C42")
	warm   = lipgloss.Color("#FFB84D")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#FF4757")
)

type styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Rule     lipgloss.Style
	Path     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title:    r.NewStyle().Bold(true).Foreground(accent),
		Subtitle: r.NewStyle().Foreground(muted),
		Rule:     r.NewStyle().Foreground(muted),
		Path:     r.NewStyle().Foreground(warm),
		Error:    r.NewStyle().Foreground(danger).Bold(true),
		Success:  r.NewStyle().Foreground(warm).Bold(true),
		Help:     r.NewStyle().Foreground(muted).MarginTop(1),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}

// defaultStyles render to stdout; the interactive view uses them.
var defaultStyles = newStyles(lipgloss.DefaultRenderer())
