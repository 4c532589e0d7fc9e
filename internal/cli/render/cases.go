package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/utils"
)

// Resolver maps a record to its status entry.
type Resolver func(models.CaseRecord) listfilter.StatusEntry

// RelativeDay describes the day key relative to today, e.g. "3 days ago".
// Undated records get "".
func RelativeDay(key string, today time.Time) string {
	day, ok := utils.ParseDay(key)
	if !ok {
		return ""
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch day.Sub(today) {
	case 0:
		return "today"
	case 24 * time.Hour:
		return "tomorrow"
	case -24 * time.Hour:
		return "yesterday"
	}
	return humanize.RelTime(day, today, "ago", "from now")
}

// DateLabel is the Thai date of a record followed by its relative day.
func DateLabel(c models.CaseRecord, today time.Time) string {
	key := c.DayKey()
	label := utils.ThaiDateLabel(key)
	if rel := RelativeDay(key, today); rel != "" {
		label += " (" + rel + ")"
	}
	if c.Time != "" {
		label += " " + c.Time
	}
	return label
}

// CaseTable draws records as a bordered table.
func CaseTable(records []models.CaseRecord, resolve Resolver, today time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(MutedStyle).
		Headers("วันที่", "HN", "ผู้ป่วย", "ประเภท", "สถานะ", "ผู้ให้บริการ").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, c := range records {
		t.Row(DateLabel(c, today), c.HN, c.PatientName, c.ScopeLabel(), Status(resolve(c)), c.Provider)
	}
	return t.Render()
}

// Groups draws date groups as headed sections, most recent first.
func Groups(groups []listfilter.DateGroup[models.CaseRecord], resolve Resolver, today time.Time) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := g.Label
		if rel := RelativeDay(g.Key, today); rel != "" {
			heading += " · " + rel
		}
		b.WriteString(TitleStyle.Render(heading))
		b.WriteString("\n")
		for _, c := range g.Items {
			b.WriteString("  ")
			b.WriteString(CaseLine(c, resolve))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CaseLine is a one-line summary of a record.
func CaseLine(c models.CaseRecord, resolve Resolver) string {
	parts := []string{}
	if c.Time != "" {
		parts = append(parts, c.Time)
	}
	parts = append(parts, c.PatientName)
	if c.HN != "" {
		parts = append(parts, MutedStyle.Render(c.HN))
	}
	parts = append(parts, c.ScopeLabel(), Status(resolve(c)))
	return strings.Join(parts, "  ")
}
