package task

import "strings"

// EditRequest carries replacement values for a task. A nil field keeps the
// current value; a set field must be non-empty once trimmed.
type EditRequest struct {
	Title    *string
	DueDate  *string
	Priority *string
}

// NewEditRequest builds a request that sets all three fields.
func NewEditRequest(title, dueDate, priority string) EditRequest {
	return EditRequest{Title: &title, DueDate: &dueDate, Priority: &priority}
}

type editFields struct {
	title    string
	dueDate  string
	priority Priority
}

func (r EditRequest) resolve(cur Task) (editFields, error) {
	title := pick(r.Title, cur.Title)
	if title == "" {
		return editFields{}, ErrEmptyTitle
	}
	due := pick(r.DueDate, cur.DueDate)
	if _, err := ParseDate(due); err != nil {
		return editFields{}, err
	}
	rawPriority := pick(r.Priority, string(cur.Priority))
	if rawPriority == "" {
		return editFields{}, ErrInvalidPriority
	}
	p, err := ParsePriority(rawPriority)
	if err != nil {
		return editFields{}, err
	}
	return editFields{title: title, dueDate: due, priority: p}, nil
}

func pick(override *string, current string) string {
	if override != nil {
		return strings.TrimSpace(*override)
	}
	return current
}
