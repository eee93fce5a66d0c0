package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the storage form of a due date.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyDueDate    = errors.New("due date cannot be empty")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD")
	ErrInvalidPriority = errors.New("priority must be High, Medium or Low")
	ErrIndexOutOfRange = errors.New("no task at that position")
)

type Task struct {
	ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string   `json:"title" yaml:"title"`
	DueDate   string   `json:"dueDate" yaml:"dueDate"`
	Priority  Priority `json:"priority" yaml:"priority"`
	Completed bool     `json:"completed" yaml:"completed"`
}

// Due parses DueDate as a calendar date at UTC midnight.
func (t Task) Due() (time.Time, error) {
	return ParseDate(t.DueDate)
}

// ParsePriority accepts the three priority names in any case.
// An empty value yields Medium.
func ParsePriority(v string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}

func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, ErrEmptyDueDate
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return t, nil
}

func newID() string {
	return uuid.NewString()
}
