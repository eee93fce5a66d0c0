// Package view turns a task snapshot and its filtered view into a display
// tree. It holds no state between renders.
package view

import (
	"taskpad/internal/query"
	"taskpad/internal/task"
)

const (
	DefaultDateLayout = "1/2/2006"
	EmptyPlaceholder  = "No tasks found."
)

type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
)

type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionToggle ActionKind = "toggle"
	ActionDelete ActionKind = "delete"
)

// Action is a row affordance bound to a position in the full collection.
type Action struct {
	Kind  ActionKind
	Index int
}

type Row struct {
	ID            string
	Index         int
	Title         string
	Priority      task.Priority
	PriorityColor Color
	Due           string
	Completed     bool
	Actions       []Action
}

type Screen struct {
	Rows        []Row
	Empty       bool
	Placeholder string
	Completed   int
	Total       int
	// Progress is a percentage in [0, 100] over the whole collection.
	Progress float64
}

type Options struct {
	DateLayout string
}

// Render builds the screen for entries. Progress always covers all tasks,
// whatever the search or filter.
func Render(all []task.Task, entries []query.Entry, opts Options) Screen {
	layout := opts.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	s := Screen{
		Completed: task.CountCompleted(all),
		Total:     len(all),
		Progress:  Progress(all),
	}
	if len(entries) == 0 {
		s.Empty = true
		s.Placeholder = EmptyPlaceholder
		return s
	}
	s.Rows = make([]Row, 0, len(entries))
	for _, e := range entries {
		s.Rows = append(s.Rows, Row{
			ID:            e.Task.ID,
			Index:         e.Index,
			Title:         e.Task.Title,
			Priority:      e.Task.Priority,
			PriorityColor: PriorityColor(e.Task.Priority),
			Due:           FormatDue(e.Task.DueDate, layout),
			Completed:     e.Task.Completed,
			Actions: []Action{
				{Kind: ActionEdit, Index: e.Index},
				{Kind: ActionToggle, Index: e.Index},
				{Kind: ActionDelete, Index: e.Index},
			},
		})
	}
	return s
}

func Progress(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(task.CountCompleted(tasks)) / float64(len(tasks)) * 100
}

func PriorityColor(p task.Priority) Color {
	switch p {
	case task.PriorityHigh:
		return ColorRed
	case task.PriorityLow:
		return ColorGreen
	default:
		return ColorOrange
	}
}

// FormatDue reformats a stored due date with layout. Unparseable values are
// shown as stored.
func FormatDue(dueDate, layout string) string {
	d, err := task.ParseDate(dueDate)
	if err != nil {
		return dueDate
	}
	return d.Format(layout)
}
