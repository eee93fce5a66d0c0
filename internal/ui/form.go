package ui

import (
	"fmt"
	"strings"

	"taskpad/internal/app"
	"taskpad/internal/task"
)

// formState backs both the add form and the edit form. editIndex is -1
// when adding.
type formState struct {
	editIndex int
	title     string
	due       string
	priority  string
	index     int
}

func newAddForm() *formState {
	d := app.DefaultForm()
	return &formState{editIndex: -1, title: d.Title, due: d.DueDate, priority: d.Priority}
}

func newEditForm(index int, t task.Task) *formState {
	return &formState{
		editIndex: index,
		title:     t.Title,
		due:       t.DueDate,
		priority:  string(t.Priority),
	}
}

func (fs *formState) editing() bool {
	return fs.editIndex >= 0
}

func formFields() []string {
	return []string{"title", "due date (YYYY-MM-DD)", "priority (High/Medium/Low)"}
}

func (fs formState) currentLabel() string {
	return formFields()[fs.index]
}

func (fs formState) currentValue() string {
	switch fs.index {
	case 0:
		return fs.title
	case 1:
		return fs.due
	case 2:
		return fs.priority
	default:
		return ""
	}
}

func (fs *formState) setCurrentValue(v string) {
	switch fs.index {
	case 0:
		fs.title = v
	case 1:
		fs.due = v
	case 2:
		fs.priority = v
	}
}

func (fs formState) form() app.Form {
	return app.Form{Title: fs.title, DueDate: fs.due, Priority: fs.priority}
}

func (fs formState) editRequest() task.EditRequest {
	return task.NewEditRequest(fs.title, fs.due, fs.priority)
}

func (fs formState) heading() string {
	if fs.editing() {
		return "Edit task"
	}
	return "Add task"
}

func (fs formState) render() string {
	values := []string{fs.title, fs.due, fs.priority}
	var b strings.Builder
	for i, name := range formFields() {
		prefix := " "
		if i == fs.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-26s : %s\n", prefix, name, val))
	}
	return b.String()
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
