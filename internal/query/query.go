// Package query derives the searched and filtered view of a task list.
package query

import (
	"fmt"
	"strings"

	"taskpad/internal/task"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

func ParseFilter(v string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(v))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterPending:
		return FilterPending, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, completed or pending)", v)
	}
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) keep(t task.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Entry is a task in a view together with its position in the full list.
type Entry struct {
	Task  task.Task
	Index int
}

// View returns the tasks whose title contains search (case-insensitive) and
// whose state passes filter, in their original order.
func View(tasks []task.Task, search string, filter Filter) []Entry {
	needle := strings.ToLower(search)
	out := make([]Entry, 0, len(tasks))
	for i, t := range tasks {
		if !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if !filter.keep(t) {
			continue
		}
		out = append(out, Entry{Task: t, Index: i})
	}
	return out
}
