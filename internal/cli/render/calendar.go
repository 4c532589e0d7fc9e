// Package render draws calendar grids and case lists with lipgloss for both
// the command-line output and the interactive screen.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/utils"
)

// CellWidth is the printed width of one calendar day.
const CellWidth = 6

// CalendarOptions tweak how a month grid is drawn.
type CalendarOptions struct {
	Cursor     string // day key drawn as the keyboard cursor
	HideCounts bool
}

// Calendar draws the month title, weekday header and every week of g.
func Calendar(g calendar.Grid, opts CalendarOptions) string {
	header := make([]string, len(utils.ThaiWeekdayHeaders))
	for i, h := range utils.ThaiWeekdayHeaders {
		header[i] = HeaderStyle.Width(CellWidth).Align(lipgloss.Center).Render(h)
	}

	rows := []string{
		TitleStyle.Width(CellWidth * 7).Align(lipgloss.Center).Render(g.Month.ThaiTitle()),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, week := range g.Weeks() {
		cells := make([]string, len(week))
		for i, c := range week {
			cells[i] = Cell(c, opts)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Cell draws one day. Selection outranks the cursor, which outranks today.
func Cell(c calendar.Cell, opts CalendarOptions) string {
	text := CellText(c, opts.HideCounts)

	style := lipgloss.NewStyle()
	switch {
	case !c.Selectable():
		style = MutedStyle
	case c.IsSelected:
		style = SelectedStyle
	case c.Date == opts.Cursor:
		style = CursorStyle
		if c.IsToday {
			style = style.Inherit(TodayStyle)
		}
	case c.IsToday:
		style = TodayStyle
	case c.ItemCount > 0:
		style = CountStyle
	}
	return style.Width(CellWidth).Align(lipgloss.Center).Render(text)
}

// CellText is the unstyled label of a day: its number, plus the item count
// for in-month days that have items.
func CellText(c calendar.Cell, hideCounts bool) string {
	if hideCounts || !c.InCurrentMonth || c.ItemCount == 0 {
		return fmt.Sprintf("%d", c.Day)
	}
	if c.ItemCount > 9 {
		return fmt.Sprintf("%d·9+", c.Day)
	}
	return fmt.Sprintf("%d·%d", c.Day, c.ItemCount)
}
