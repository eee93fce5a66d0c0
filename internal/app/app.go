// Package app owns a task session: the collection, its persistence, the
// current search and filter, and the rendered screen. Every successful
// mutation is persisted and followed by a full re-render.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"taskpad/internal/logging"
	"taskpad/internal/query"
	"taskpad/internal/reminder"
	"taskpad/internal/task"
	"taskpad/internal/view"
)

// Persister stores the whole collection.
type Persister interface {
	Load() []task.Task
	Save([]task.Task) error
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(v string) Theme {
	if v == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Form is the add-task input. An empty priority means Medium.
type Form struct {
	Title    string
	DueDate  string
	Priority string
}

// DefaultForm is what the form resets to after a successful submit.
func DefaultForm() Form {
	return Form{Priority: string(task.PriorityMedium)}
}

type Options struct {
	Filter     query.Filter
	Theme      Theme
	DateLayout string
	Reminders  *reminder.Scanner
	Logger     *log.Logger
}

type App struct {
	tasks     *task.Collection
	store     Persister
	search    string
	filter    query.Filter
	theme     Theme
	layout    string
	reminders *reminder.Scanner
	logger    *log.Logger
	screen    view.Screen
}

// New loads the stored collection and renders the first screen.
func New(store Persister, opts Options) *App {
	a := &App{
		store:     store,
		filter:    opts.Filter,
		theme:     opts.Theme,
		layout:    opts.DateLayout,
		reminders: opts.Reminders,
		logger:    opts.Logger,
	}
	if a.filter == "" {
		a.filter = query.FilterAll
	}
	if a.theme == "" {
		a.theme = ThemeLight
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	a.tasks = task.NewCollection(store.Load())
	a.render()
	return a
}

// Submit adds a task from f. On any validation failure nothing changes and
// nothing is written.
func (a *App) Submit(f Form) (task.Task, error) {
	t, err := a.tasks.Add(f.Title, f.DueDate, f.Priority)
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Debug("task added", "id", t.ID, "title", t.Title)
	return t, a.commit()
}

func (a *App) Toggle(index int) (task.Task, error) {
	t, err := a.tasks.Toggle(index)
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Debug("task toggled", "id", t.ID, "completed", t.Completed)
	return t, a.commit()
}

func (a *App) Delete(index int) (task.Task, error) {
	t, err := a.tasks.Remove(index)
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Debug("task deleted", "id", t.ID)
	return t, a.commit()
}

func (a *App) Edit(index int, req task.EditRequest) (task.Task, error) {
	t, err := a.tasks.Update(index, req)
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Debug("task edited", "id", t.ID)
	return t, a.commit()
}

func (a *App) SetSearch(s string) {
	a.search = s
	a.render()
}

func (a *App) SetFilter(f query.Filter) {
	a.filter = f
	a.render()
}

func (a *App) Search() string {
	return a.search
}

func (a *App) Filter() query.Filter {
	return a.filter
}

// ToggleTheme flips between light and dark. Tasks are untouched.
func (a *App) ToggleTheme() Theme {
	if a.theme == ThemeDark {
		a.theme = ThemeLight
	} else {
		a.theme = ThemeDark
	}
	return a.theme
}

func (a *App) Theme() Theme {
	return a.theme
}

// Screen is the result of the last render.
func (a *App) Screen() view.Screen {
	return a.screen
}

func (a *App) Tasks() []task.Task {
	return a.tasks.Tasks()
}

func (a *App) Task(index int) (task.Task, error) {
	return a.tasks.At(index)
}

// IndexOf maps a task ID to its current position, or -1.
func (a *App) IndexOf(id string) int {
	return a.tasks.IndexOf(id)
}

// Remind runs one reminder scan over the full collection.
func (a *App) Remind(now time.Time) []reminder.Alert {
	if a.reminders == nil {
		return nil
	}
	return a.reminders.Run(a.tasks.Tasks(), now)
}

func (a *App) commit() error {
	defer a.render()
	if err := a.store.Save(a.tasks.Tasks()); err != nil {
		a.logger.Error("save tasks", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (a *App) render() {
	all := a.tasks.Tasks()
	entries := query.View(all, a.search, a.filter)
	a.screen = view.Render(all, entries, view.Options{DateLayout: a.layout})
}
