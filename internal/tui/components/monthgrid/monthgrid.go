// Package monthgrid is the month calendar pane of the interactive screen. It
// owns a keyboard cursor and reports selections and month moves as messages.
package monthgrid

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/utils"
)

// SelectDateMsg asks for the day under the cursor to be toggled.
type SelectDateMsg struct {
	Date string
}

// ChangeMonthMsg asks for the visible month to move by Delta.
type ChangeMonthMsg struct {
	Delta int
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select day"),
		),
	}
}

type Model struct {
	grid   calendar.Grid
	cursor string
	keys   KeyMap
}

// New returns a grid pane with the cursor on cursor. A cursor outside the
// grid's month is pulled into it.
func New(grid calendar.Grid, cursor string) Model {
	m := Model{cursor: cursor, keys: DefaultKeyMap()}
	m.SetGrid(grid)
	return m
}

// SetGrid replaces the drawn month. A cursor outside the new month keeps its
// day number, clamped to the month's length.
func (m *Model) SetGrid(grid calendar.Grid) {
	m.grid = grid
	if grid.Month.IsZero() || grid.Month.Contains(m.cursor) {
		return
	}
	day := 1
	if t, ok := utils.ParseDay(m.cursor); ok {
		day = min(t.Day(), grid.Month.Days())
	}
	m.cursor = utils.FormatDay(time.Date(grid.Month.Year, grid.Month.Month, day, 0, 0, 0, 0, time.UTC))
}

// SetCursor moves the cursor to date without changing the month.
func (m *Model) SetCursor(date string) {
	m.cursor = date
}

func (m Model) Cursor() string {
	return m.cursor
}

func (m Model) Grid() calendar.Grid {
	return m.grid
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		return m.move(-7)
	case key.Matches(keyMsg, m.keys.Down):
		return m.move(7)
	case key.Matches(keyMsg, m.keys.Left):
		return m.move(-1)
	case key.Matches(keyMsg, m.keys.Right):
		return m.move(1)
	case key.Matches(keyMsg, m.keys.Select):
		if c, ok := m.grid.Cell(m.cursor); !ok || !c.Selectable() {
			return m, nil
		}
		date := m.cursor
		return m, func() tea.Msg { return SelectDateMsg{Date: date} }
	}
	return m, nil
}

// move shifts the cursor by days. Leaving the month asks the parent to
// follow with a ChangeMonthMsg.
func (m Model) move(days int) (Model, tea.Cmd) {
	t, ok := utils.ParseDay(m.cursor)
	if !ok {
		t = m.grid.Month.First()
	}
	t = t.AddDate(0, 0, days)
	m.cursor = utils.FormatDay(t)

	delta := calendar.MonthOf(t).Diff(m.grid.Month)
	if delta == 0 {
		return m, nil
	}
	return m, func() tea.Msg { return ChangeMonthMsg{Delta: delta} }
}

func (m Model) View() string {
	return render.Calendar(m.grid, render.CalendarOptions{Cursor: m.cursor})
}
