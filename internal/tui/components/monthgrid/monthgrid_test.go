package monthgrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleftcare/casecal/internal/calendar"
)

var december = calendar.Month{Year: 2025, Month: time.December}

func grid(m calendar.Month) calendar.Grid {
	today := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)
	return calendar.BuildGrid[string](m, nil, func(s string) string { return s }, nil, today, "")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewClampsCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
		want   string
	}{
		{"inside month", "2025-12-10", "2025-12-10"},
		{"keeps day number", "2025-11-15", "2025-12-15"},
		{"invalid cursor", "", "2025-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(grid(december), tt.cursor).Cursor(); got != tt.want {
				t.Errorf("Cursor() = %s, want %s", got, tt.want)
			}
		})
	}

	m := New(grid(december), "2025-12-31")
	m.SetGrid(grid(december.Add(2)))
	if m.Cursor() != "2026-02-28" {
		t.Errorf("cursor = %s, want the last day of February", m.Cursor())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		cursor     string
		key        tea.KeyMsg
		want       string
		monthDelta int
	}{
		{"right", "2025-12-10", runes("l"), "2025-12-11", 0},
		{"left arrow", "2025-12-10", tea.KeyMsg{Type: tea.KeyLeft}, "2025-12-09", 0},
		{"down", "2025-12-10", runes("j"), "2025-12-17", 0},
		{"up into previous month", "2025-12-03", runes("k"), "2025-11-26", -1},
		{"right into next month", "2025-12-31", runes("l"), "2026-01-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := New(grid(december), tt.cursor).Update(tt.key)
			if m.Cursor() != tt.want {
				t.Errorf("Cursor() = %s, want %s", m.Cursor(), tt.want)
			}
			if tt.monthDelta == 0 {
				if cmd != nil {
					t.Errorf("unexpected command for an in-month move")
				}
				return
			}
			if cmd == nil {
				t.Fatal("no command for a move out of the month")
			}
			msg, ok := cmd().(ChangeMonthMsg)
			if !ok || msg.Delta != tt.monthDelta {
				t.Errorf("message = %#v, want delta %d", msg, tt.monthDelta)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	m := New(grid(december), "2025-12-04")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if msg, ok := cmd().(SelectDateMsg); !ok || msg.Date != "2025-12-04" {
		t.Errorf("message = %#v", msg)
	}

	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Error("unbound key produced a command")
	}

	// A trailing January day is drawn but cannot be selected.
	m.SetCursor("2026-01-03")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on a day outside the month produced a command")
	}
}

func TestView(t *testing.T) {
	out := New(grid(december), "2025-12-04").View()
	if !strings.Contains(out, "ธันวาคม 2568") {
		t.Errorf("View() missing the month title:\n%s", out)
	}
}
