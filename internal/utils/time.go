package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleftcare/casecal/internal/constants"
)

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// ThaiWeekdayHeaders are the grid column headers, Monday first.
var ThaiWeekdayHeaders = []string{"จ", "อ", "พ", "พฤ", "ศ", "ส", "อา"}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns midnight of the current day in the given timezone,
// expressed as a UTC calendar date so it compares cleanly with parsed day keys.
func TodayInTimezone(timezone string) (time.Time, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// DayKey truncates a date or timestamp string to its YYYY-MM-DD portion.
// The second return value is false when no valid calendar day can be read.
func DayKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "T "); i >= 0 {
		raw = raw[:i]
	}
	if len(raw) != len(constants.DateFormat) {
		return "", false
	}
	if _, err := time.Parse(constants.DateFormat, raw); err != nil {
		return "", false
	}
	return raw, true
}

// ParseDay parses the day portion of raw as a UTC midnight.
func ParseDay(raw string) (time.Time, bool) {
	key, ok := DayKey(raw)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDay formats t as a day key.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// BuddhistYear converts a Gregorian year to the Thai solar calendar.
func BuddhistYear(year int) int {
	return year + constants.BuddhistEraOffset
}

// ThaiMonthName returns the full Thai name of m.
func ThaiMonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return thaiMonths[m-1]
}

// FormatThaiMonth renders a month title, e.g. "ธันวาคม 2568".
func FormatThaiMonth(year int, m time.Month) string {
	return fmt.Sprintf("%s %d", ThaiMonthName(m), BuddhistYear(year))
}

// FormatThaiDate renders a long Thai date, e.g. "4 ธันวาคม 2568".
func FormatThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ThaiMonthName(t.Month()), BuddhistYear(t.Year()))
}

// ThaiDateLabel formats a day key for display. Keys that are not valid days
// render as "ไม่ระบุวันที่".
func ThaiDateLabel(key string) string {
	t, ok := ParseDay(key)
	if !ok {
		return "ไม่ระบุวันที่"
	}
	return FormatThaiDate(t)
}
