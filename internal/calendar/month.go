package calendar

import (
	"fmt"
	"time"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

// Month identifies a calendar month independent of any day or timezone.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, use YYYY-MM: %w", s, err)
	}
	return MonthOf(t), nil
}

// Add moves the month by delta. The day is pinned to the 1st so that
// month-length differences never spill into a neighbouring month.
func (m Month) Add(delta int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC))
}

// Diff returns how many months m lies after o.
func (m Month) Diff(o Month) int {
	return (m.Year-o.Year)*12 + int(m.Month) - int(o.Month)
}

// First returns the first day of the month at UTC midnight.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month at UTC midnight.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Last().Day()
}

// Contains reports whether the day portion of raw falls inside the month.
func (m Month) Contains(raw string) bool {
	day, ok := utils.ParseDay(raw)
	if !ok {
		return false
	}
	return day.Year() == m.Year && day.Month() == m.Month
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) String() string {
	return m.First().Format(constants.MonthFormat)
}

// ThaiTitle renders the month as a Thai calendar heading.
func (m Month) ThaiTitle() string {
	return utils.FormatThaiMonth(m.Year, m.Month)
}
