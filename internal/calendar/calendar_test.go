package calendar

import (
	"testing"
	"time"
)

type visit struct {
	ID     string
	Date   string
	Scope  string
	Status string
}

func visitDate(v visit) string { return v.Date }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthAdd(t *testing.T) {
	tests := []struct {
		name  string
		start Month
		delta int
		want  Month
	}{
		{"next month", Month{2025, time.December}, 1, Month{2026, time.January}},
		{"previous month", Month{2026, time.January}, -1, Month{2025, time.December}},
		{"no change", Month{2025, time.March}, 0, Month{2025, time.March}},
		{"long jump forward", Month{2025, time.January}, 25, Month{2027, time.February}},
		{"long jump back", Month{2025, time.January}, -13, Month{2023, time.December}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Add(tt.delta); got != tt.want {
				t.Errorf("Add(%d) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-12")
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if m != (Month{2025, time.December}) {
		t.Errorf("ParseMonth() = %v", m)
	}
	if m.String() != "2025-12" {
		t.Errorf("String() = %q", m.String())
	}
	if _, err := ParseMonth("12/2025"); err == nil {
		t.Error("ParseMonth() expected error for malformed month")
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{2025, time.December}
	if !m.Contains("2025-12-31T23:00:00Z") {
		t.Error("Contains() = false for timestamp inside the month")
	}
	if m.Contains("2026-01-01") {
		t.Error("Contains() = true for next month")
	}
	if m.Contains("invalid-date") {
		t.Error("Contains() = true for malformed date")
	}
}

func TestBuildGridDecember2025(t *testing.T) {
	g := BuildGrid(Month{2025, time.December}, []visit(nil), visitDate, nil, day(2025, time.December, 15), "")

	if len(g.Cells) != 35 {
		t.Fatalf("len(Cells) = %d, want 35", len(g.Cells))
	}
	if g.Cells[0].Date != "2025-12-01" {
		t.Errorf("first cell = %s, want 2025-12-01", g.Cells[0].Date)
	}
	if last := g.Cells[len(g.Cells)-1]; last.Date != "2026-01-04" || last.InCurrentMonth {
		t.Errorf("last cell = %+v, want 2026-01-04 outside month", last)
	}
	if len(g.Weeks()) != 5 {
		t.Errorf("len(Weeks()) = %d, want 5", len(g.Weeks()))
	}
}

func TestBuildGridCompleteness(t *testing.T) {
	today := day(2025, time.June, 10)
	for year := 2024; year <= 2026; year++ {
		for mo := time.January; mo <= time.December; mo++ {
			m := Month{year, mo}
			g := BuildGrid(m, []visit(nil), visitDate, nil, today, "")

			if len(g.Cells)%7 != 0 {
				t.Fatalf("%v: len(Cells) = %d, not a multiple of 7", m, len(g.Cells))
			}
			first, _ := time.Parse("2006-01-02", g.Cells[0].Date)
			last, _ := time.Parse("2006-01-02", g.Cells[len(g.Cells)-1].Date)
			if first.Weekday() != time.Monday {
				t.Errorf("%v: grid starts on %v", m, first.Weekday())
			}
			if last.Weekday() != time.Sunday {
				t.Errorf("%v: grid ends on %v", m, last.Weekday())
			}

			seen := make(map[int]int)
			for _, c := range g.Cells {
				if c.InCurrentMonth {
					seen[c.Day]++
				}
			}
			if len(seen) != m.Days() {
				t.Errorf("%v: %d in-month days, want %d", m, len(seen), m.Days())
			}
			for d, n := range seen {
				if n != 1 {
					t.Errorf("%v: day %d appears %d times", m, d, n)
				}
			}
		}
	}
}

func TestBuildGridCounts(t *testing.T) {
	items := []visit{
		{ID: "1", Date: "2025-12-04", Scope: "homevisit", Status: "Pending"},
		{ID: "2", Date: "2025-12-04", Scope: "telemed", Status: "Scheduled"},
		{ID: "3", Date: "2025-12-04T14:00:00+07:00", Scope: "homevisit", Status: "Completed"},
		{ID: "4", Date: "invalid-date", Scope: "homevisit", Status: "Pending"},
		{ID: "5", Date: "", Scope: "homevisit", Status: "Pending"},
		{ID: "6", Date: "2026-01-02", Scope: "homevisit", Status: "Pending"},
	}
	onlyHomeVisit := func(v visit) bool { return v.Scope == "homevisit" }

	t.Run("scoped count", func(t *testing.T) {
		g := BuildGrid(Month{2025, time.December}, items[:2], visitDate, onlyHomeVisit, day(2025, time.December, 1), "")
		c, ok := g.Cell("2025-12-04")
		if !ok {
			t.Fatal("2025-12-04 missing from grid")
		}
		if c.ItemCount != 1 {
			t.Errorf("ItemCount = %d, want 1", c.ItemCount)
		}
	})

	t.Run("timestamps truncated and malformed excluded", func(t *testing.T) {
		g := BuildGrid(Month{2025, time.December}, items, visitDate, onlyHomeVisit, day(2025, time.December, 1), "")
		c, _ := g.Cell("2025-12-04")
		if c.ItemCount != 2 {
			t.Errorf("ItemCount = %d, want 2", c.ItemCount)
		}
		total := 0
		for _, c := range g.Cells {
			total += c.ItemCount
		}
		// two on the 4th plus the trailing 2026-01-02 padding day
		if total != 3 {
			t.Errorf("total count = %d, want 3", total)
		}
		if g.Total() != 2 {
			t.Errorf("Total() = %d, want 2", g.Total())
		}
	})

	t.Run("nil accessor counts nothing", func(t *testing.T) {
		counts := CountPerDay(items, nil, nil)
		if len(counts) != 0 {
			t.Errorf("CountPerDay() = %v, want empty", counts)
		}
	})
}

func TestBuildGridTodayAndSelection(t *testing.T) {
	m := Month{2025, time.December}

	t.Run("today inside grid", func(t *testing.T) {
		g := BuildGrid(m, []visit(nil), visitDate, nil, day(2025, time.December, 4), "2025-12-10")
		todays, selected := 0, 0
		for _, c := range g.Cells {
			if c.IsToday {
				todays++
				if c.Date != "2025-12-04" {
					t.Errorf("today cell = %s", c.Date)
				}
			}
			if c.IsSelected {
				selected++
				if c.Date != "2025-12-10" {
					t.Errorf("selected cell = %s", c.Date)
				}
			}
		}
		if todays != 1 || selected != 1 {
			t.Errorf("today cells = %d, selected cells = %d, want 1 and 1", todays, selected)
		}
	})

	t.Run("today on padding day", func(t *testing.T) {
		g := BuildGrid(m, []visit(nil), visitDate, nil, day(2026, time.January, 3), "")
		c, _ := g.Cell("2026-01-03")
		if !c.IsToday || c.InCurrentMonth {
			t.Errorf("cell = %+v, want today outside month", c)
		}
	})

	t.Run("today outside grid", func(t *testing.T) {
		g := BuildGrid(m, []visit(nil), visitDate, nil, day(2024, time.March, 1), "")
		for _, c := range g.Cells {
			if c.IsToday {
				t.Errorf("unexpected today cell %s", c.Date)
			}
		}
	})

	t.Run("selected padding day not marked", func(t *testing.T) {
		g := BuildGrid(m, []visit(nil), visitDate, nil, day(2025, time.December, 4), "2026-01-02")
		for _, c := range g.Cells {
			if c.IsSelected {
				t.Errorf("padding cell %s marked selected", c.Date)
			}
		}
	})

	t.Run("today in another zone", func(t *testing.T) {
		bangkok := time.FixedZone("ICT", 7*60*60)
		g := BuildGrid(m, []visit(nil), visitDate, nil, time.Date(2025, time.December, 5, 1, 0, 0, 0, bangkok), "")
		c, _ := g.Cell("2025-12-05")
		if !c.IsToday {
			t.Error("today should follow the supplied time's own calendar day")
		}
	})
}

func TestBuildGridIdempotent(t *testing.T) {
	items := []visit{{ID: "1", Date: "2025-12-04"}, {ID: "2", Date: "2025-12-05"}}
	today := day(2025, time.December, 4)
	a := BuildGrid(Month{2025, time.December}, items, visitDate, nil, today, "2025-12-05")
	b := BuildGrid(Month{2025, time.December}, items, visitDate, nil, today, "2025-12-05")
	if len(a.Cells) != len(b.Cells) {
		t.Fatalf("grid sizes differ: %d vs %d", len(a.Cells), len(b.Cells))
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Errorf("cell %d differs: %+v vs %+v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestCalendarSelectDate(t *testing.T) {
	var events []string
	c := New(Month{2025, time.December}, Events{
		OnDateSelect: func(date string) { events = append(events, date) },
	})

	t.Run("select then toggle off", func(t *testing.T) {
		events = nil
		c.SetSelected("")
		if got, ok := c.SelectDate("2025-12-04"); !ok || got != "2025-12-04" {
			t.Fatalf("SelectDate() = (%q, %v)", got, ok)
		}
		if got, ok := c.SelectDate("2025-12-04"); !ok || got != "" {
			t.Fatalf("second SelectDate() = (%q, %v), want cleared", got, ok)
		}
		if len(events) != 2 || events[0] != "2025-12-04" || events[1] != "" {
			t.Errorf("events = %q, want [2025-12-04, \"\"]", events)
		}
		if c.Selected() != "" {
			t.Errorf("Selected() = %q, want empty", c.Selected())
		}
	})

	t.Run("reselect when already selected clears", func(t *testing.T) {
		events = nil
		c.SetSelected("2025-12-04")
		c.SelectDate("2025-12-04")
		if len(events) != 1 || events[0] != "" {
			t.Errorf("events = %q, want a single clear", events)
		}
	})

	t.Run("switching days selects the new day", func(t *testing.T) {
		events = nil
		c.SetSelected("2025-12-04")
		c.SelectDate("2025-12-05")
		if c.Selected() != "2025-12-05" || len(events) != 1 || events[0] != "2025-12-05" {
			t.Errorf("Selected() = %q events = %q", c.Selected(), events)
		}
	})

	t.Run("outside month is a no-op", func(t *testing.T) {
		events = nil
		c.SetSelected("")
		if _, ok := c.SelectDate("2026-01-02"); ok {
			t.Error("SelectDate() on padding day reported a change")
		}
		if _, ok := c.SelectDate("invalid-date"); ok {
			t.Error("SelectDate() on malformed date reported a change")
		}
		if len(events) != 0 || c.Selected() != "" {
			t.Errorf("events = %q selected = %q, want none", events, c.Selected())
		}
	})
}

func TestCalendarChangeMonth(t *testing.T) {
	var months []Month
	c := New(Month{2025, time.December}, Events{
		OnMonthChange: func(m Month) { months = append(months, m) },
	})

	if got := c.ChangeMonth(1); got != (Month{2026, time.January}) {
		t.Errorf("ChangeMonth(1) = %v", got)
	}
	if got := c.ChangeMonth(-2); got != (Month{2025, time.November}) {
		t.Errorf("ChangeMonth(-2) = %v", got)
	}
	c.ChangeMonth(0)
	if len(months) != 2 {
		t.Errorf("OnMonthChange fired %d times, want 2", len(months))
	}
}

func TestCalendarJumpTo(t *testing.T) {
	var selected []string
	c := New(Month{2024, time.January}, Events{
		OnDateSelect: func(date string) { selected = append(selected, date) },
	})

	today := day(2025, time.December, 4)
	c.JumpTo(today)
	c.JumpTo(today)

	if c.Month() != (Month{2025, time.December}) {
		t.Errorf("Month() = %v", c.Month())
	}
	if c.Selected() != "2025-12-04" {
		t.Errorf("Selected() = %q", c.Selected())
	}
	if len(selected) != 1 {
		t.Errorf("OnDateSelect fired %d times, want 1 (jumping never toggles)", len(selected))
	}
}

func TestMonthDiff(t *testing.T) {
	dec := Month{Year: 2025, Month: time.December}
	tests := []struct {
		other Month
		want  int
	}{
		{dec, 0},
		{Month{Year: 2025, Month: time.November}, 1},
		{Month{Year: 2026, Month: time.February}, -2},
		{Month{Year: 2024, Month: time.December}, 12},
	}
	for _, tt := range tests {
		if got := dec.Diff(tt.other); got != tt.want {
			t.Errorf("Diff(%v) = %d, want %d", tt.other, got, tt.want)
		}
		if back := tt.other.Add(dec.Diff(tt.other)); back != dec {
			t.Errorf("%v.Add(Diff) = %v, want %v", tt.other, back, dec)
		}
	}
}
