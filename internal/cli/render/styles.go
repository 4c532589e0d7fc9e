package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cleftcare/casecal/internal/listfilter"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	TodayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Underline(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	CountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

// StatusStyles colors a status badge by category.
var StatusStyles = map[listfilter.Category]lipgloss.Style{
	listfilter.CategoryPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	listfilter.CategoryInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	listfilter.CategoryCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	listfilter.CategoryCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	listfilter.CategoryOther:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Status renders a status label in its category color.
func Status(entry listfilter.StatusEntry) string {
	style, ok := StatusStyles[entry.Category]
	if !ok {
		style = StatusStyles[listfilter.CategoryOther]
	}
	return style.Render(entry.Label)
}
