// Package calview couples a month calendar with a scoped list so that
// picking a day narrows the list below it. A View owns only its filter state;
// records are supplied by the caller and changes are reported through Events.
package calview

import (
	"time"

	"github.com/cleftcare/casecal/internal/calendar"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/listfilter"
)

// Mode is how the list is constrained by date.
type Mode int

const (
	// AllItems applies no date constraint.
	AllItems Mode = iota
	// MonthScoped limits the list to the visible month.
	MonthScoped
	// DateScoped limits the list to the selected day.
	DateScoped
)

func (m Mode) String() string {
	switch m {
	case AllItems:
		return "all"
	case MonthScoped:
		return "month"
	case DateScoped:
		return "date"
	default:
		return "unknown"
	}
}

// Policy decides what the list shows when no day is selected.
type Policy string

const (
	PolicyMonth Policy = constants.NoDatePolicyMonth
	PolicyAll   Policy = constants.NoDatePolicyAll
)

// ParsePolicy maps a settings value to a Policy, defaulting to PolicyMonth.
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyAll {
		return PolicyAll
	}
	return PolicyMonth
}

// Events are the notifications a View emits. Any field may be nil.
type Events struct {
	// OnDateSelect receives the new selected day; "" means cleared.
	OnDateSelect         func(date string)
	OnMonthChange        func(m calendar.Month)
	OnScopeChange        func(scope string)
	OnStatusFilterChange func(status string)
	OnSearchChange       func(query string)
}

// Options configure a View.
type Options[T any] struct {
	Filter listfilter.Config[T]
	Today  time.Time
	Month  calendar.Month // defaults to the month of Today
	Scope  string
	Status string

	// Policy applies to every scope without an entry in ScopePolicies.
	Policy        Policy
	ScopePolicies map[string]Policy

	Events Events
}

// FilterState is a snapshot of a View's narrowing.
type FilterState struct {
	Scope        string
	Status       string
	Query        string
	SelectedDate string
	Month        calendar.Month
	Mode         Mode
	History      bool
}

// View is a calendar plus filtered list over caller-owned records.
type View[T any] struct {
	filter   *listfilter.Filter[T]
	cal      *calendar.Calendar
	items    []T
	today    time.Time
	scope    string
	status   string
	query    string
	history  bool
	mode     Mode
	policy   Policy
	policies map[string]Policy
	events   Events
}

// New returns a View over items.
func New[T any](items []T, opts Options[T]) *View[T] {
	month := opts.Month
	if month.IsZero() {
		month = calendar.MonthOf(opts.Today)
	}
	status := opts.Status
	if status == "" {
		status = constants.StatusAll
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyMonth
	}

	v := &View[T]{
		filter:   listfilter.New(opts.Filter),
		items:    items,
		today:    opts.Today,
		scope:    opts.Scope,
		status:   status,
		policy:   policy,
		policies: opts.ScopePolicies,
		events:   opts.Events,
	}
	v.cal = calendar.New(month, calendar.Events{
		OnDateSelect:  v.dateSelected,
		OnMonthChange: v.monthChanged,
	})
	v.mode = v.noDateMode()
	return v
}

// SetItems replaces the records the view reads.
func (v *View[T]) SetItems(items []T) {
	v.items = items
}

// Items returns the records the view reads.
func (v *View[T]) Items() []T {
	return v.items
}

// SetToday moves the view's notion of the current day.
func (v *View[T]) SetToday(t time.Time) {
	v.today = t
}

// Today returns the view's current day.
func (v *View[T]) Today() time.Time {
	return v.today
}

// Filter exposes the list filter, for resolving statuses of rendered rows.
func (v *View[T]) Filter() *listfilter.Filter[T] {
	return v.filter
}

// Mode returns the current date mode.
func (v *View[T]) Mode() Mode {
	return v.mode
}

// Policy returns the no-date policy of the active scope.
func (v *View[T]) Policy() Policy {
	return v.policyFor(v.scope)
}

// State returns a snapshot of the view's narrowing.
func (v *View[T]) State() FilterState {
	return FilterState{
		Scope:        v.scope,
		Status:       v.status,
		Query:        v.query,
		SelectedDate: v.cal.Selected(),
		Month:        v.cal.Month(),
		Mode:         v.mode,
		History:      v.history,
	}
}

// ChangeMonth moves the visible month by delta. A selected day stays selected
// even when it scrolls out of view.
func (v *View[T]) ChangeMonth(delta int) calendar.Month {
	return v.cal.ChangeMonth(delta)
}

// SelectDate toggles date. Re-selecting the selected day falls back to the
// scope's no-date policy.
func (v *View[T]) SelectDate(date string) bool {
	_, ok := v.cal.SelectDate(date)
	return ok
}

// ShowAll clears the selected day and drops every date constraint.
func (v *View[T]) ShowAll() {
	had := v.cal.Selected() != ""
	v.cal.SetSelected("")
	v.mode = AllItems
	if had && v.events.OnDateSelect != nil {
		v.events.OnDateSelect("")
	}
}

// GoToday shows today's month with today selected.
func (v *View[T]) GoToday() string {
	key := v.cal.JumpTo(v.today)
	v.mode = DateScoped
	return key
}

// SetScope switches the active scope. Without a selected day the mode is
// reset to the new scope's policy.
func (v *View[T]) SetScope(scope string) {
	if scope == v.scope {
		return
	}
	v.scope = scope
	if v.mode != DateScoped {
		v.mode = v.noDateMode()
	}
	if v.events.OnScopeChange != nil {
		v.events.OnScopeChange(scope)
	}
}

// SetStatusFilter changes the status filter; "" means constants.StatusAll.
func (v *View[T]) SetStatusFilter(status string) {
	if status == "" {
		status = constants.StatusAll
	}
	if status == v.status {
		return
	}
	v.status = status
	if v.events.OnStatusFilterChange != nil {
		v.events.OnStatusFilterChange(status)
	}
}

// SetSearch changes the free-text query.
func (v *View[T]) SetSearch(query string) {
	if query == v.query {
		return
	}
	v.query = query
	if v.events.OnSearchChange != nil {
		v.events.OnSearchChange(query)
	}
}

// SetHistory switches between the regular list and the history variant.
func (v *View[T]) SetHistory(on bool) {
	v.history = on
}

// ListState is the list filter state the view currently implies.
func (v *View[T]) ListState() listfilter.State {
	s := listfilter.State{
		Scope:   v.scope,
		Status:  v.status,
		Query:   v.query,
		History: v.history,
	}
	switch v.mode {
	case DateScoped:
		s.SelectedDate = v.cal.Selected()
	case MonthScoped:
		s.Month = v.cal.Month().String()
	}
	return s
}

// FilteredItems returns the records the list should render.
func (v *View[T]) FilteredItems() []T {
	return v.filter.Apply(v.items, v.ListState())
}

// GroupedItems returns FilteredItems grouped by day, most recent first.
func (v *View[T]) GroupedItems() []listfilter.DateGroup[T] {
	return v.filter.Group(v.FilteredItems())
}

// Grid builds the visible month. Counts use the same scope, status and
// search constraints as the list.
func (v *View[T]) Grid() calendar.Grid {
	s := v.ListState()
	keep := func(it T) bool { return v.filter.MatchExceptDate(it, s) }
	return calendar.BuildGrid(v.cal.Month(), v.items, v.filter.Config().DateOf, keep, v.today, v.cal.Selected())
}

func (v *View[T]) dateSelected(date string) {
	if date == "" {
		v.mode = v.noDateMode()
	} else {
		v.mode = DateScoped
	}
	if v.events.OnDateSelect != nil {
		v.events.OnDateSelect(date)
	}
}

func (v *View[T]) monthChanged(m calendar.Month) {
	if v.mode == AllItems && v.Policy() == PolicyMonth {
		v.mode = MonthScoped
	}
	if v.events.OnMonthChange != nil {
		v.events.OnMonthChange(m)
	}
}

func (v *View[T]) noDateMode() Mode {
	if v.Policy() == PolicyAll {
		return AllItems
	}
	return MonthScoped
}

func (v *View[T]) policyFor(scope string) Policy {
	if p, ok := v.policies[scope]; ok && p != "" {
		return p
	}
	return v.policy
}
