package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taskpad/internal/task"
)

type harness struct {
	t      *testing.T
	config string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, config: filepath.Join(t.TempDir(), "config.toml")}
}

// run executes one taskpad invocation against the harness config and
// returns what it printed to stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &errOut
	argv := append([]string{"taskpad", "--config", h.config}, args...)
	err := cmd.Run(context.Background(), argv)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "taskpad %v", args)
	return out
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "--due", "2025-05-01", "--priority", "High", "Pay", "rent")
	assert.Equal(t, "Added #1: Pay rent\n", out)

	out = h.mustRun("list")
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "[High]")
	assert.Contains(t, out, "Due: 5/1/2025")
	assert.Contains(t, out, "Progress: 0/1 (0%)")
}

func TestAdd_Invalid(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("add", "--due", "2025-05-01")
	assert.ErrorIs(t, err, task.ErrEmptyTitle)

	_, err = h.run("add", "Pay rent")
	assert.ErrorIs(t, err, task.ErrEmptyDueDate)

	out := h.mustRun("list")
	assert.Contains(t, out, "No tasks found.")
}

func TestDoneRemoveEdit(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--due", "2025-05-01", "Pay rent")
	h.mustRun("add", "--due", "2025-05-02", "--priority", "Low", "Buy milk")

	assert.Equal(t, "#2 done: Buy milk\n", h.mustRun("done", "2"))
	assert.Contains(t, h.mustRun("list"), "Progress: 1/2 (50%)")

	out := h.mustRun("edit", "--priority", "High", "--title", "Buy oat milk", "2")
	assert.Equal(t, "Updated #2: Buy oat milk [High] due 2025-05-02\n", out)

	assert.Equal(t, "Deleted #1: Pay rent\n", h.mustRun("rm", "1"))

	out = h.mustRun("list", "--format", "json")
	var l listing
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	require.Len(t, l.Tasks, 1)
	assert.Equal(t, 1, l.Tasks[0].Number)
	assert.Equal(t, "Buy oat milk", l.Tasks[0].Title)
	assert.True(t, l.Tasks[0].Completed)
	assert.InDelta(t, 100.0, l.Progress, 0.001)
}

func TestEdit_InvalidLeavesTask(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--due", "2025-05-01", "Pay rent")

	_, err := h.run("edit", "--title", "  ", "1")
	assert.ErrorIs(t, err, task.ErrEmptyTitle)

	assert.Contains(t, h.mustRun("list"), "Pay rent")
}

func TestTaskNumberErrors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--due", "2025-05-01", "Pay rent")

	_, err := h.run("done")
	assert.ErrorIs(t, err, ErrTaskNumberRequired)

	_, err = h.run("done", "zero")
	assert.Error(t, err)

	_, err = h.run("rm", "5")
	assert.ErrorIs(t, err, task.ErrIndexOutOfRange)
}

func TestList_FilterSearchAndYAML(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--due", "2025-05-01", "Pay rent")
	h.mustRun("add", "--due", "2025-05-02", "Pay phone bill")
	h.mustRun("add", "--due", "2025-05-03", "Walk dog")
	h.mustRun("done", "2")

	out := h.mustRun("list", "--search", "PAY", "--filter", "pending", "--format", "yaml")
	var l listing
	require.NoError(t, yaml.Unmarshal([]byte(out), &l))
	require.Len(t, l.Tasks, 1)
	assert.Equal(t, "Pay rent", l.Tasks[0].Title)
	assert.Equal(t, 3, l.Total)
	assert.Equal(t, 1, l.Completed)

	out = h.mustRun("list", "--filter", "completed")
	assert.Contains(t, out, "   2")
	assert.NotContains(t, out, "Walk dog")

	_, err := h.run("list", "--filter", "someday")
	assert.Error(t, err)
	_, err = h.run("list", "--format", "xml")
	assert.Error(t, err)
}

func TestRemind_At(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--due", "2025-05-01", "Pay rent")
	h.mustRun("add", "--due", "2025-04-30", "Call mum")
	h.mustRun("add", "--due", "2025-05-09", "Renew passport")

	out := h.mustRun("remind", "--at", "2025-04-30")
	assert.Contains(t, out, "Reminder: Task Due Tomorrow: Pay rent is due tomorrow!")
	assert.Contains(t, out, "Reminder: Task Due Today: Call mum is due today!")
	assert.NotContains(t, out, "Renew passport")

	_, err := h.run("remind", "--at", "whenever")
	assert.Error(t, err)
}

func TestDBFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	other := filepath.Join(t.TempDir(), "other.db")

	h.mustRun("--db", other, "add", "--due", "2025-05-01", "Only here")

	assert.Contains(t, h.mustRun("--db", other, "list"), "Only here")
	assert.Contains(t, h.mustRun("list"), "No tasks found.")
}
