package core

import "github.com/charmbracelet/lipgloss"

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	TitleStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true)
	LabelStyle      = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	MutedStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	SuggestionStyle = lipgloss.NewStyle().Foreground(colorText)
	CursorStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	ChipStyle       = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorChip).
			Padding(0, 1)
)
