package listfilter

import (
	"sort"

	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/utils"
)

// DateGroup is a run of records sharing a day, for history and log views.
type DateGroup[T any] struct {
	Key   string
	Label string
	Items []T
}

// GroupByDate groups items by day, most recent first. Records without a
// readable date go to a constants.UnknownDateKey group placed last. Records
// keep their input order within a group.
func GroupByDate[T any](items []T, dateOf func(T) string) []DateGroup[T] {
	byKey := make(map[string][]T)
	var keys []string
	for _, it := range items {
		key := constants.UnknownDateKey
		if dateOf != nil {
			if k, ok := utils.DayKey(dateOf(it)); ok {
				key = k
			}
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], it)
	}

	sort.Slice(keys, func(i, j int) bool {
		switch {
		case keys[i] == constants.UnknownDateKey:
			return false
		case keys[j] == constants.UnknownDateKey:
			return true
		}
		return keys[i] > keys[j]
	})

	groups := make([]DateGroup[T], 0, len(keys))
	for _, k := range keys {
		groups = append(groups, DateGroup[T]{
			Key:   k,
			Label: utils.ThaiDateLabel(k),
			Items: byKey[k],
		})
	}
	return groups
}
