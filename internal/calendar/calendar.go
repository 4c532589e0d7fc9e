// Package calendar builds Monday-start month grids annotated with per-day
// item counts, and tracks month navigation and day selection for a view.
package calendar

import (
	"time"

	"github.com/cleftcare/casecal/internal/utils"
)

// Events are the notifications a Calendar emits. Either field may be nil.
type Events struct {
	// OnDateSelect receives the new selection; "" means the selection was cleared.
	OnDateSelect  func(date string)
	OnMonthChange func(m Month)
}

// Calendar holds the visible month and the selected day of a grid.
type Calendar struct {
	month    Month
	selected string
	events   Events
}

// New returns a Calendar showing month with nothing selected.
func New(month Month, events Events) *Calendar {
	return &Calendar{month: month, events: events}
}

// Month returns the visible month.
func (c *Calendar) Month() Month {
	return c.month
}

// Selected returns the selected day key, or "" when no day is selected.
func (c *Calendar) Selected() string {
	return c.selected
}

// SetSelected replaces the selection without emitting events. Malformed
// dates clear the selection.
func (c *Calendar) SetSelected(date string) {
	key, ok := utils.DayKey(date)
	if !ok {
		key = ""
	}
	c.selected = key
}

// SetMonth shows m, emitting OnMonthChange when the month actually changes.
func (c *Calendar) SetMonth(m Month) {
	if m == c.month {
		return
	}
	c.month = m
	if c.events.OnMonthChange != nil {
		c.events.OnMonthChange(m)
	}
}

// ChangeMonth moves the visible month by delta and returns the new month.
func (c *Calendar) ChangeMonth(delta int) Month {
	if delta != 0 {
		c.SetMonth(c.month.Add(delta))
	}
	return c.month
}

// SelectDate toggles the selection of date. Selecting the selected day clears
// it. Days outside the visible month and malformed dates are ignored; the
// returned bool reports whether anything happened.
func (c *Calendar) SelectDate(date string) (string, bool) {
	key, ok := utils.DayKey(date)
	if !ok || !c.month.Contains(key) {
		return c.selected, false
	}

	next := key
	if key == c.selected {
		next = ""
	}
	c.selected = next
	if c.events.OnDateSelect != nil {
		c.events.OnDateSelect(next)
	}
	return next, true
}

// JumpTo shows the month containing day and selects it. Unlike SelectDate it
// never toggles.
func (c *Calendar) JumpTo(day time.Time) string {
	c.SetMonth(MonthOf(day))
	key := utils.FormatDay(day)
	if c.selected != key {
		c.selected = key
		if c.events.OnDateSelect != nil {
			c.events.OnDateSelect(key)
		}
	}
	return key
}
