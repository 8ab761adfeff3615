package todo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sandeepkv93/dashd/internal/model"
)

// Filter is the set of independent view predicates. An empty Category means
// no category is selected. ShowCompleted and Status are applied separately
// and intersect.
type Filter struct {
	Search        string
	Status        model.StatusFilter
	Category      string
	ShowCompleted bool
}

func DefaultFilter() Filter {
	return Filter{Status: model.StatusAll, ShowCompleted: true}
}

// Project returns the filtered, sorted tasks to render. The input slice is
// not modified.
func Project(tasks []model.Task, f Filter, sortBy model.SortOption) []model.Task {
	needle := strings.ToLower(f.Search)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if !f.ShowCompleted && t.Completed {
			continue
		}
		switch f.Status {
		case model.StatusActive:
			if t.Completed {
				continue
			}
		case model.StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	switch sortBy {
	case model.SortOldest:
		slices.SortStableFunc(out, compareCreated)
	case model.SortPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		})
	default:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return compareCreated(b, a)
		})
	}
	return out
}

func compareCreated(a, b model.Task) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
