package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/app"
	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/query"
	"taskpad/internal/reminder"
	"taskpad/internal/task"
)

type memStore struct {
	tasks []task.Task
	saves int
}

func (s *memStore) Load() []task.Task { return s.tasks }

func (s *memStore) Save(tasks []task.Task) error {
	s.tasks = tasks
	s.saves++
	return nil
}

func newModel(t *testing.T, opts app.Options, tasks ...task.Task) (Model, *memStore) {
	t.Helper()
	cfg, err := config.LoadOrCreate(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	store := &memStore{tasks: tasks}
	opts.Logger = logging.Discard()
	return New(app.New(store, opts), cfg, logging.Discard()), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func TestAddFlow(t *testing.T) {
	m, store := newModel(t, app.Options{})

	m = send(m, runes("a"))
	require.Equal(t, modeForm, m.mode)

	m = send(m, runes("Pay rent"), enter, runes("2025-05-01"), enter)
	assert.Equal(t, string(task.PriorityMedium), m.input.Value())
	m = send(m, enter)

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Added task", m.status)
	assert.Equal(t, 1, store.saves)
	require.Len(t, store.tasks, 1)
	assert.Equal(t, "Pay rent", store.tasks[0].Title)
	assert.Equal(t, task.PriorityMedium, store.tasks[0].Priority)
	assert.Contains(t, m.View(), "Pay rent")
}

func TestAddFlow_InvalidKeepsFormOpen(t *testing.T) {
	m, store := newModel(t, app.Options{})

	m = send(m, runes("a"), runes("Pay rent"), enter, enter, enter)

	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Due date cannot be empty", m.status)
	assert.Zero(t, store.saves)

	m = send(m, esc)
	assert.Equal(t, modeList, m.mode)
	assert.True(t, m.app.Screen().Empty)
}

func TestFormTabCyclesFields(t *testing.T) {
	m, _ := newModel(t, app.Options{})

	m = send(m, runes("a"), runes("x"), tab)
	assert.Equal(t, 1, m.form.index)
	m = send(m, tab, tab)
	assert.Equal(t, 0, m.form.index)
	assert.Equal(t, "x", m.input.Value())
}

func TestToggleAndDelete(t *testing.T) {
	m, store := newModel(t, app.Options{},
		task.Task{ID: "1", Title: "a", DueDate: "2025-05-01", Priority: task.PriorityLow},
		task.Task{ID: "2", Title: "b", DueDate: "2025-05-02", Priority: task.PriorityHigh},
	)

	m = send(m, runes("j"), space)
	assert.True(t, store.tasks[1].Completed)
	assert.Equal(t, 1, m.cursor)
	assert.InDelta(t, 50.0, m.app.Screen().Progress, 0.001)

	m = send(m, runes("d"))
	require.Len(t, store.tasks, 1)
	assert.Equal(t, "a", store.tasks[0].Title)
	assert.Equal(t, 0, m.cursor)
}

func TestEditFlow(t *testing.T) {
	m, store := newModel(t, app.Options{},
		task.Task{ID: "1", Title: "a", DueDate: "2025-05-01", Priority: task.PriorityLow, Completed: true},
	)

	m = send(m, runes("e"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "a", m.input.Value())

	m = send(m, runes("bc"), enter, enter, enter)
	assert.Equal(t, "Task updated", m.status)
	assert.Equal(t, "abc", store.tasks[0].Title)
	assert.True(t, store.tasks[0].Completed)
}

func TestFilterCycle(t *testing.T) {
	m, _ := newModel(t, app.Options{},
		task.Task{ID: "1", Title: "a", DueDate: "2025-05-01", Priority: task.PriorityLow},
	)

	m = send(m, runes("f"))
	assert.Equal(t, query.FilterPending, m.app.Filter())
	m = send(m, runes("f"))
	assert.Equal(t, query.FilterCompleted, m.app.Filter())
	assert.Contains(t, m.View(), "No tasks found.")
	m = send(m, runes("f"))
	assert.Equal(t, query.FilterAll, m.app.Filter())
}

func TestSearch(t *testing.T) {
	m, store := newModel(t, app.Options{},
		task.Task{ID: "1", Title: "Pay rent", DueDate: "2025-05-01", Priority: task.PriorityLow},
		task.Task{ID: "2", Title: "Buy milk", DueDate: "2025-05-02", Priority: task.PriorityLow},
	)

	m = send(m, runes("/"), runes("MILK"))
	require.Equal(t, modeSearch, m.mode)
	rows := m.app.Screen().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Index)

	m = send(m, enter)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "MILK", m.app.Search())

	m = send(m, runes("/"), esc)
	assert.Empty(t, m.app.Search())
	assert.Len(t, m.app.Screen().Rows, 2)
	assert.Zero(t, store.saves)
}

func TestThemeToggle(t *testing.T) {
	m, store := newModel(t, app.Options{})
	m = send(m, runes("t"))
	assert.Equal(t, app.ThemeDark, m.app.Theme())
	assert.Equal(t, "Theme: dark", m.status)
	assert.Zero(t, store.saves)
}

func TestRemindMsgAddsNotices(t *testing.T) {
	scanner := reminder.NewScanner(reminder.NotifierFunc(func(reminder.Alert) error { return nil }),
		func() bool { return true }, "", logging.Discard())
	m, _ := newModel(t, app.Options{Reminders: scanner},
		task.Task{ID: "1", Title: "Pay rent", DueDate: "2025-05-01", Priority: task.PriorityHigh},
	)

	at := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	m = send(m, remindMsg{at: at})
	require.Len(t, m.notices, 1)
	assert.Contains(t, m.View(), "Pay rent is due tomorrow!")

	for range maxNotices + 2 {
		m = send(m, remindMsg{at: at})
	}
	assert.Len(t, m.notices, maxNotices)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, app.Options{})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 2, wrapIndex(-1, 3))
	assert.Equal(t, 0, wrapIndex(3, 3))
	assert.Equal(t, 0, wrapIndex(5, 0))
}
