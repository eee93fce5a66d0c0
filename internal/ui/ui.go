package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskpad/internal/app"
	"taskpad/internal/config"
	"taskpad/internal/reminder"
	"taskpad/internal/task"
	"taskpad/internal/view"
)

const maxNotices = 5

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
)

// remindMsg asks the model to run a reminder scan. It is posted from the
// schedule goroutine so the scan itself runs inside Update.
type remindMsg struct {
	at time.Time
}

type Model struct {
	app     *app.App
	cfg     config.Config
	logger  *log.Logger
	cursor  int
	mode    mode
	input   textinput.Model
	bar     progress.Model
	form    *formState
	status  string
	notices []string
}

func New(a *app.App, cfg config.Config, logger *log.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		app:    a,
		cfg:    cfg,
		logger: logger,
		input:  ti,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to search, '%s' to filter.", cfg.Keys.Add, cfg.Keys.Search, cfg.Keys.Filter),
	}
}

// Run starts the TUI and, when reminders are enabled, the reminder
// schedule feeding it.
func Run(a *app.App, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(a, cfg, logger))
	if cfg.Reminders.Enabled {
		sched, err := reminder.Start(cfg.Reminders.Schedule, func() {
			program.Send(remindMsg{at: time.Now()})
		})
		if err != nil {
			return err
		}
		defer sched.Stop()
		logger.Info("reminders scheduled", "schedule", sched.String())
	}
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case remindMsg:
		return m.handleReminders(msg.at), nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.bar.Width = min(max(msg.Width-30, 10), 60)
	}
	return m, nil
}

func (m Model) handleReminders(at time.Time) Model {
	alerts := m.app.Remind(at)
	for _, a := range alerts {
		m.notices = append(m.notices, fmt.Sprintf("%s: %s", a.Title, a.Body))
	}
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
	return m
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	rows := m.app.Screen().Rows
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case m.cfg.Keys.Add:
		m.form = newAddForm()
		return m.enterForm("Add mode: tab to move, enter to save/next, esc to cancel")
	case m.cfg.Keys.Edit:
		row, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		t, err := m.app.Task(row.Index)
		if err != nil {
			m.status = fmt.Sprintf("edit failed: %v", err)
			return m, nil
		}
		m.form = newEditForm(row.Index, t)
		return m.enterForm("Edit mode: tab to move, enter to save/next, esc to cancel")
	case m.cfg.Keys.Toggle:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, err := m.app.Toggle(row.Index)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
		} else {
			m.status = fmt.Sprintf("%q marked %s", t.Title, humanDone(t.Completed))
		}
		m.follow(row.ID)
	case m.cfg.Keys.Delete:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, err := m.app.Delete(row.Index)
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Deleted %q", t.Title)
		}
		m.cursor = clampCursor(m.cursor, len(m.app.Screen().Rows))
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.app.Search())
		m.input.Placeholder = "search titles"
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Search: type to filter, enter to keep, esc to clear"
	case m.cfg.Keys.Filter:
		m.app.SetFilter(m.app.Filter().Next())
		m.cursor = clampCursor(m.cursor, len(m.app.Screen().Rows))
		m.status = fmt.Sprintf("Filter: %s", m.app.Filter())
	case m.cfg.Keys.Theme:
		m.status = fmt.Sprintf("Theme: %s", m.app.ToggleTheme())
	}
	return m, nil
}

func (m Model) enterForm(status string) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = status
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Next, "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.CursorEnd()
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Prev, "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.CursorEnd()
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.CursorEnd()
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	if m.form.editing() {
		t, err := m.app.Edit(m.form.editIndex, m.form.editRequest())
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		switch {
		case isInvalidInput(err):
			m.status = fmt.Sprintf("Edit discarded: %v", err)
		case err != nil:
			m.status = fmt.Sprintf("save failed: %v", err)
			m.follow(t.ID)
		default:
			m.status = "Task updated"
			m.follow(t.ID)
		}
		return m, nil
	}

	t, err := m.app.Submit(m.form.form())
	if isInvalidInput(err) {
		// The form stays open with what was typed.
		m.status = capitalize(err.Error())
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	} else {
		m.status = "Added task"
	}
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.follow(t.ID)
	return m, nil
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.app.SetSearch("")
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = clampCursor(m.cursor, len(m.app.Screen().Rows))
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.mode = modeList
		m.input.Blur()
		m.status = fmt.Sprintf("Search: %q", m.app.Search())
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.app.SetSearch(m.input.Value())
		m.cursor = clampCursor(m.cursor, len(m.app.Screen().Rows))
		return m, cmd
	}
}

func (m Model) View() string {
	st := stylesFor(m.app.Theme())
	screen := m.app.Screen()
	var b strings.Builder

	b.WriteString(st.title.Render("taskpad"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(screen.Progress / 100))
	b.WriteString(st.muted.Render(fmt.Sprintf("  %d/%d done (%.0f%%)", screen.Completed, screen.Total, screen.Progress)))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(fmt.Sprintf("filter: %s • search: %q", m.app.Filter(), m.app.Search())))
	b.WriteString("\n\n")

	if screen.Empty {
		b.WriteString(st.muted.Render(screen.Placeholder))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows(screen, st))
	}

	switch {
	case m.mode == modeForm && m.form != nil:
		b.WriteString("\n")
		b.WriteString(st.panel.Render(m.form.heading() + "\n\n" + m.form.render() + "\n" + m.input.View()))
		b.WriteString("\n")
	case m.mode == modeSearch:
		b.WriteString("\nSearch: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if len(m.notices) > 0 {
		b.WriteString("\n")
		for _, n := range m.notices {
			b.WriteString(st.notice.Render("🔔 " + n))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(st.muted.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderRows(screen view.Screen, st styles) string {
	var b strings.Builder
	for i, r := range screen.Rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = st.selected.Render(">")
		}

		checkbox := "[ ]"
		if r.Completed {
			checkbox = "[x]"
		}

		title := st.row.Render(r.Title)
		if r.Completed {
			title = st.completed.Render(r.Title)
		}
		label := st.priority(r.PriorityColor).Render("[" + string(r.Priority) + "]")

		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n", cursor, checkbox, title, label, st.muted.Render("Due: "+r.Due)))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s filter • %s theme • %s quit",
		k.Up, k.Down, k.Add, k.Edit, keyLabel(k.Toggle), k.Delete, k.Search, k.Filter, k.Theme, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) selected() (view.Row, bool) {
	rows := m.app.Screen().Rows
	if len(rows) == 0 {
		return view.Row{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

// follow moves the cursor to the row showing id, or clamps it when that
// task is no longer visible.
func (m *Model) follow(id string) {
	rows := m.app.Screen().Rows
	for i, r := range rows {
		if id != "" && r.ID == id {
			m.cursor = i
			return
		}
	}
	m.cursor = clampCursor(m.cursor, len(rows))
}

func isInvalidInput(err error) bool {
	return errors.Is(err, task.ErrEmptyTitle) ||
		errors.Is(err, task.ErrEmptyDueDate) ||
		errors.Is(err, task.ErrInvalidDueDate) ||
		errors.Is(err, task.ErrInvalidPriority) ||
		errors.Is(err, task.ErrIndexOutOfRange)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
