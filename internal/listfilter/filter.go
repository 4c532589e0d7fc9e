// Package listfilter narrows a list of dated records to what a table or
// history view should show for the active scope, status, search text and date.
package listfilter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

// Config tells a Filter how to read records of type T.
type Config[T any] struct {
	DateOf     func(T) string
	ScopeOf    func(T) string
	StatusOf   func(T) string
	Searchable func(T) []string
	Statuses   StatusMap

	// HistoryScopes lists scopes whose history view shows every status.
	HistoryScopes map[string]bool

	// Less orders the filtered list. When nil records are ordered by day,
	// undated records last, ties keeping input order.
	Less func(a, b T) bool
}

// State is the user's current narrowing of the list.
type State struct {
	Scope        string // "" or constants.ScopeAll matches every scope
	Status       string // raw status or Category; "" or constants.StatusAll matches everything
	Query        string
	SelectedDate string // YYYY-MM-DD; takes precedence over Month
	Month        string // YYYY-MM; ignored when empty or malformed
	History      bool
}

// Filter applies a State to records of type T.
type Filter[T any] struct {
	cfg Config[T]
}

// New returns a Filter for cfg.
func New[T any](cfg Config[T]) *Filter[T] {
	if cfg.Statuses == nil {
		cfg.Statuses = StatusMap{}
	}
	return &Filter[T]{cfg: cfg}
}

// Config returns the filter's configuration.
func (f *Filter[T]) Config() Config[T] {
	return f.cfg
}

// Apply returns the records matching every constraint in s, sorted. The
// result is never nil.
func (f *Filter[T]) Apply(items []T, s State) []T {
	preds := f.Predicates(s)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if all(preds, it) {
			out = append(out, it)
		}
	}
	f.sort(out)
	return out
}

// Match reports whether it passes every constraint in s.
func (f *Filter[T]) Match(it T, s State) bool {
	return f.MatchExceptDate(it, s) && f.MatchDate(it, s)
}

// MatchExceptDate applies the scope, status and search constraints. Calendar
// counts use this so that they agree with the list for any selected day.
func (f *Filter[T]) MatchExceptDate(it T, s State) bool {
	return f.MatchScope(it, s) && f.MatchStatus(it, s) && f.MatchQuery(it, s)
}

// Predicates returns each constraint of s as an independent predicate.
func (f *Filter[T]) Predicates(s State) []func(T) bool {
	return []func(T) bool{
		func(it T) bool { return f.MatchScope(it, s) },
		func(it T) bool { return f.MatchStatus(it, s) },
		func(it T) bool { return f.MatchQuery(it, s) },
		func(it T) bool { return f.MatchDate(it, s) },
	}
}

func (f *Filter[T]) MatchScope(it T, s State) bool {
	if s.Scope == "" || s.Scope == constants.ScopeAll || f.cfg.ScopeOf == nil {
		return true
	}
	return f.cfg.ScopeOf(it) == s.Scope
}

// MatchStatus compares the filter value with both the raw status and the
// category it resolves to in the record's own scope.
func (f *Filter[T]) MatchStatus(it T, s State) bool {
	if s.Status == "" || s.Status == constants.StatusAll || f.cfg.StatusOf == nil {
		return true
	}
	if s.History && f.cfg.HistoryScopes[s.Scope] {
		return true
	}
	raw := f.cfg.StatusOf(it)
	if strings.EqualFold(raw, s.Status) {
		return true
	}
	scope := s.Scope
	if f.cfg.ScopeOf != nil {
		scope = f.cfg.ScopeOf(it)
	}
	return string(f.cfg.Statuses.Resolve(scope, raw).Category) == s.Status
}

func (f *Filter[T]) MatchQuery(it T, s State) bool {
	q := fold(strings.TrimSpace(s.Query))
	if q == "" {
		return true
	}
	if f.cfg.Searchable == nil {
		return false
	}
	for _, field := range f.cfg.Searchable(it) {
		if strings.Contains(fold(field), q) {
			return true
		}
	}
	return false
}

// MatchDate applies the day or month constraint. Records with unreadable
// dates never satisfy a date constraint.
func (f *Filter[T]) MatchDate(it T, s State) bool {
	sel, hasDay := utils.DayKey(s.SelectedDate)
	month, hasMonth := monthPrefix(s.Month)
	if !hasDay && !hasMonth {
		return true
	}
	if f.cfg.DateOf == nil {
		return false
	}
	key, ok := utils.DayKey(f.cfg.DateOf(it))
	if !ok {
		return false
	}
	if hasDay {
		return key == sel
	}
	return strings.HasPrefix(key, month)
}

// Group splits items into date groups using the filter's date accessor.
func (f *Filter[T]) Group(items []T) []DateGroup[T] {
	return GroupByDate(items, f.cfg.DateOf)
}

// Resolve returns the status entry of it.
func (f *Filter[T]) Resolve(it T) StatusEntry {
	var scope, raw string
	if f.cfg.ScopeOf != nil {
		scope = f.cfg.ScopeOf(it)
	}
	if f.cfg.StatusOf != nil {
		raw = f.cfg.StatusOf(it)
	}
	return f.cfg.Statuses.Resolve(scope, raw)
}

func (f *Filter[T]) sort(items []T) {
	if f.cfg.Less != nil {
		sort.SliceStable(items, func(i, j int) bool { return f.cfg.Less(items[i], items[j]) })
		return
	}
	if f.cfg.DateOf == nil {
		return
	}
	keys := make(map[int]string, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		idx[i] = i
		if k, ok := utils.DayKey(f.cfg.DateOf(it)); ok {
			keys[i] = k
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		switch {
		case ka == "":
			return false
		case kb == "":
			return true
		}
		return ka < kb
	})
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// fold normalizes s for case-insensitive comparison across scripts.
func all[T any](preds []func(T) bool, it T) bool {
	for _, p := range preds {
		if !p(it) {
			return false
		}
	}
	return true
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// monthPrefix turns "YYYY-MM" into the "YYYY-MM-" prefix of its day keys.
func monthPrefix(month string) (string, bool) {
	if month == "" {
		return "", false
	}
	if _, ok := utils.DayKey(month + "-01"); !ok {
		return "", false
	}
	return month + "-", true
}
