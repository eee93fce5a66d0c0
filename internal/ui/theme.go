package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/app"
	"taskpad/internal/view"
)

type palette struct {
	Red    lipgloss.Color
	Orange lipgloss.Color
	Green  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Notice lipgloss.Color
}

var (
	lightPalette = palette{
		Red:    lipgloss.Color("#DC2626"),
		Orange: lipgloss.Color("#EA580C"),
		Green:  lipgloss.Color("#16A34A"),
		Text:   lipgloss.Color("#111827"),
		Muted:  lipgloss.Color("#6B7280"),
		Accent: lipgloss.Color("#2563EB"),
		Notice: lipgloss.Color("#B45309"),
	}
	darkPalette = palette{
		Red:    lipgloss.Color("#FF6B6B"),
		Orange: lipgloss.Color("#F59E0B"),
		Green:  lipgloss.Color("#7EE2B8"),
		Text:   lipgloss.Color("#E5E7EB"),
		Muted:  lipgloss.Color("#9CA3AF"),
		Accent: lipgloss.Color("#79C0FF"),
		Notice: lipgloss.Color("#FBBF24"),
	}
)

type styles struct {
	p         palette
	title     lipgloss.Style
	row       lipgloss.Style
	completed lipgloss.Style
	muted     lipgloss.Style
	selected  lipgloss.Style
	notice    lipgloss.Style
	panel     lipgloss.Style
}

func stylesFor(t app.Theme) styles {
	p := lightPalette
	if t == app.ThemeDark {
		p = darkPalette
	}
	return styles{
		p:         p,
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		row:       lipgloss.NewStyle().Foreground(p.Text),
		completed: lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		muted:     lipgloss.NewStyle().Foreground(p.Muted),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		notice:    lipgloss.NewStyle().Foreground(p.Notice),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			Padding(0, 1),
	}
}

func (s styles) priority(c view.Color) lipgloss.Style {
	switch c {
	case view.ColorRed:
		return lipgloss.NewStyle().Foreground(s.p.Red)
	case view.ColorGreen:
		return lipgloss.NewStyle().Foreground(s.p.Green)
	default:
		return lipgloss.NewStyle().Foreground(s.p.Orange)
	}
}
