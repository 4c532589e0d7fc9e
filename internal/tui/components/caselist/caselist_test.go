package caselist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleftcare/casecal/internal/listfilter"
	"github.com/cleftcare/casecal/internal/models"
)

var today = time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

func resolve(r models.CaseRecord) listfilter.StatusEntry {
	return listfilter.DefaultStatusMap().Resolve(r.Scope, r.Status)
}

func TestItem(t *testing.T) {
	tests := []struct {
		name      string
		record    models.CaseRecord
		wantTitle string
		wantDesc  []string
	}{
		{
			name:      "full record",
			record:    models.CaseRecord{ID: "hv-1", HN: "HN-0001", PatientName: "นายสมชาย ใจดี", Scope: "homevisit", Status: "WaitVisit", Date: "2025-12-10", Time: "09:30"},
			wantTitle: "นายสมชาย ใจดี  HN-0001",
			wantDesc:  []string{"10 ธันวาคม 2568 (today) 09:30", "เยี่ยมบ้าน", "รอเยี่ยม"},
		},
		{
			name:      "no name falls back to id",
			record:    models.CaseRecord{ID: "tm-9", Scope: "telemed", Status: "Mystery", Date: "invalid-date"},
			wantTitle: "tm-9",
			wantDesc:  []string{"ไม่ระบุวันที่", "Mystery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Case: tt.record, Status: resolve(tt.record), Today: today}
			if got := item.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			desc := item.Description()
			for _, want := range tt.wantDesc {
				if !strings.Contains(desc, want) {
					t.Errorf("Description() = %q, missing %q", desc, want)
				}
			}
		})
	}
}

func TestModel(t *testing.T) {
	m := New(60, 20)
	if m.Len() != 0 || !strings.Contains(m.View(), EmptyText) {
		t.Errorf("empty list view = %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on an empty list")
	}

	m.SetCases([]models.CaseRecord{
		{ID: "a", PatientName: "Anan", Scope: "telemed", Status: "Scheduled", Date: "2025-12-04"},
		{ID: "b", PatientName: "Somsri", Scope: "telemed", Status: "Completed", Date: "2025-12-05"},
	}, resolve, today)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d", m.Len())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	if r, ok := m.Selected(); !ok || r.ID != "b" {
		t.Errorf("Selected() after J = %+v", r)
	}

	// Calendar keys do not move the list.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if r, _ := m.Selected(); r.ID != "b" {
		t.Errorf("k moved the list to %s", r.ID)
	}
}

func TestSetGroups(t *testing.T) {
	groups := listfilter.GroupByDate([]models.CaseRecord{
		{ID: "a", PatientName: "Anan", Scope: "telemed", Status: "Scheduled", Date: "2025-12-04"},
		{ID: "b", PatientName: "Somsri", Scope: "telemed", Status: "Completed", Date: "2025-12-05"},
		{ID: "c", PatientName: "Malee", Scope: "telemed", Status: "Completed", Date: "2025-12-05"},
	}, models.CaseDate)

	m := New(60, 20)
	m.SetGroups(groups, resolve, today)
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3 records", m.Len())
	}
	if r, ok := m.Selected(); !ok || r.ID != "b" {
		t.Fatalf("cursor starts on %+v, want the first record", r)
	}
	for _, want := range []string{"5 ธันวาคม 2568", "4 ธันวาคม 2568"} {
		if !strings.Contains(m.View(), want) {
			t.Errorf("view missing heading %q:\n%s", want, m.View())
		}
	}

	// J from the last record of a day steps over the next heading.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	if r, ok := m.Selected(); !ok || r.ID != "a" {
		t.Errorf("Selected() after JJ = %+v, %v", r, ok)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("K")})
	if r, ok := m.Selected(); !ok || r.ID != "c" {
		t.Errorf("Selected() after K = %+v, %v", r, ok)
	}
}
