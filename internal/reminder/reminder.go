// Package reminder scans tasks for due dates that are close and hands
// alerts to a notifier.
package reminder

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"taskpad/internal/logging"
	"taskpad/internal/task"
)

const DefaultIcon = "https://cdn-icons-png.flaticon.com/512/2910/2910768.png"

type Kind string

const (
	KindDueTomorrow Kind = "due_tomorrow"
	KindDueToday    Kind = "due_today"
)

type Alert struct {
	Kind   Kind
	TaskID string
	Index  int
	Title  string
	Body   string
	Icon   string
}

type Notifier interface {
	Notify(Alert) error
}

type NotifierFunc func(Alert) error

func (f NotifierFunc) Notify(a Alert) error {
	return f(a)
}

// PermissionFunc asks the host whether alerts may be shown.
type PermissionFunc func() bool

// DaysUntil is floor((due - now) / 24h).
func DaysUntil(due, now time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}

// Scan returns one alert for every pending task due in exactly zero or one
// whole days from now. Tasks with unparseable dates are skipped.
func Scan(tasks []task.Task, now time.Time, icon string) []Alert {
	var alerts []Alert
	for i, t := range tasks {
		if t.Completed {
			continue
		}
		due, err := t.Due()
		if err != nil {
			continue
		}
		switch DaysUntil(due, now) {
		case 1:
			alerts = append(alerts, Alert{
				Kind:   KindDueTomorrow,
				TaskID: t.ID,
				Index:  i,
				Title:  "Reminder: Task Due Tomorrow",
				Body:   fmt.Sprintf("%s is due tomorrow!", t.Title),
				Icon:   icon,
			})
		case 0:
			alerts = append(alerts, Alert{
				Kind:   KindDueToday,
				TaskID: t.ID,
				Index:  i,
				Title:  "Reminder: Task Due Today",
				Body:   fmt.Sprintf("%s is due today!", t.Title),
				Icon:   icon,
			})
		}
	}
	return alerts
}

// Scanner delivers scan results. Permission is asked once, when the
// scanner is built; without it every scan is a no-op.
type Scanner struct {
	notifier Notifier
	icon     string
	granted  bool
	logger   *log.Logger
}

func NewScanner(n Notifier, ask PermissionFunc, icon string, logger *log.Logger) *Scanner {
	if icon == "" {
		icon = DefaultIcon
	}
	if logger == nil {
		logger = logging.Discard()
	}
	granted := ask != nil && ask()
	if !granted {
		logger.Debug("reminders disabled: notification permission not granted")
	}
	return &Scanner{notifier: n, icon: icon, granted: granted, logger: logger}
}

func (s *Scanner) Granted() bool {
	return s.granted
}

// Run scans tasks and notifies each alert. It returns the alerts that were
// handed to the notifier.
func (s *Scanner) Run(tasks []task.Task, now time.Time) []Alert {
	if !s.granted || s.notifier == nil {
		return nil
	}
	alerts := Scan(tasks, now, s.icon)
	for _, a := range alerts {
		if err := s.notifier.Notify(a); err != nil {
			s.logger.Warn("notify", "task", a.TaskID, "err", err)
		}
	}
	s.logger.Debug("reminder scan", "tasks", len(tasks), "alerts", len(alerts))
	return alerts
}

// LogNotifier writes alerts to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(a Alert) error {
	n.Logger.Info(a.Title, "body", a.Body, "icon", a.Icon)
	return nil
}
