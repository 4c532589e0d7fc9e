package calendar

import (
	"time"

	"github.com/cleftcare/casecal/internal/utils"
)

// Cell is one day of a month grid.
type Cell struct {
	Date           string
	Day            int
	InCurrentMonth bool
	IsToday        bool
	IsSelected     bool
	ItemCount      int
}

// Selectable reports whether the cell accepts day selection.
func (c Cell) Selectable() bool {
	return c.InCurrentMonth
}

// Grid is a month laid out in complete Monday-start weeks.
type Grid struct {
	Month Month
	Cells []Cell
}

// Weeks splits the grid into rows of seven cells.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Cell looks up the cell for a day key.
func (g Grid) Cell(date string) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Date == date {
			return c, true
		}
	}
	return Cell{}, false
}

// Total returns the sum of item counts over the in-month cells.
func (g Grid) Total() int {
	total := 0
	for _, c := range g.Cells {
		if c.InCurrentMonth {
			total += c.ItemCount
		}
	}
	return total
}

// Bounds returns the first and last day shown by a grid for m: the Monday
// on or before the 1st and the Sunday on or after the last day.
func Bounds(m Month) (time.Time, time.Time) {
	first, last := m.First(), m.Last()
	lead := (int(first.Weekday()) + 6) % 7
	trail := (7 - int(last.Weekday())) % 7
	return first.AddDate(0, 0, -lead), last.AddDate(0, 0, trail)
}

// CountPerDay buckets items by the day portion of their date. Items whose
// date cannot be read, or that keep rejects, are not counted. keep may be nil.
func CountPerDay[T any](items []T, dateOf func(T) string, keep func(T) bool) map[string]int {
	counts := make(map[string]int)
	if dateOf == nil {
		return counts
	}
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		key, ok := utils.DayKey(dateOf(it))
		if !ok {
			continue
		}
		counts[key]++
	}
	return counts
}

// BuildGrid lays out month with per-day counts of items passing keep.
// today is supplied by the caller and selected is a day key or "".
// The result depends only on the arguments.
func BuildGrid[T any](month Month, items []T, dateOf func(T) string, keep func(T) bool, today time.Time, selected string) Grid {
	counts := CountPerDay(items, dateOf, keep)
	todayKey := utils.FormatDay(today)
	start, end := Bounds(month)

	cells := make([]Cell, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDay(d)
		inMonth := d.Month() == month.Month && d.Year() == month.Year
		cells = append(cells, Cell{
			Date:           key,
			Day:            d.Day(),
			InCurrentMonth: inMonth,
			IsToday:        key == todayKey,
			IsSelected:     inMonth && selected != "" && key == selected,
			ItemCount:      counts[key],
		})
	}
	return Grid{Month: month, Cells: cells}
}
