package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorAccent   = lipgloss.Color("39")
	colorSubtle   = lipgloss.Color("245")
	colorValue    = lipgloss.Color("252")
	colorOK       = lipgloss.Color("42")
	colorWarning  = lipgloss.Color("214")
	colorCritical = lipgloss.Color("196")
	colorSelected = lipgloss.Color("57")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared by all views.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorValue)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	OKStyle     = lipgloss.NewStyle().Foreground(colorOK)

	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(colorSelected)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
)
