package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: "0", Title: "Pay rent", DueDate: "2025-05-01", Priority: task.PriorityHigh},
		{ID: "1", Title: "Buy milk", DueDate: "2025-05-02", Priority: task.PriorityLow, Completed: true},
		{ID: "2", Title: "Pay phone bill", DueDate: "2025-05-03", Priority: task.PriorityMedium, Completed: true},
		{ID: "3", Title: "Walk dog", DueDate: "2025-05-04", Priority: task.PriorityLow},
	}
}

func indices(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Index)
	}
	return out
}

func TestView(t *testing.T) {
	tests := []struct {
		name   string
		search string
		filter Filter
		want   []int
	}{
		{"all", "", FilterAll, []int{0, 1, 2, 3}},
		{"pending", "", FilterPending, []int{0, 3}},
		{"completed", "", FilterCompleted, []int{1, 2}},
		{"search is case-insensitive", "PAY", FilterAll, []int{0, 2}},
		{"search and filter combine", "pay", FilterCompleted, []int{2}},
		{"no match", "gym", FilterAll, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, indices(View(sample(), tc.search, tc.filter)))
		})
	}
}

func TestView_EntriesMatchPredicate(t *testing.T) {
	all := sample()
	for _, f := range []Filter{FilterAll, FilterPending, FilterCompleted} {
		for _, e := range View(all, "a", f) {
			require.Equal(t, all[e.Index], e.Task)
			switch f {
			case FilterPending:
				assert.False(t, e.Task.Completed)
			case FilterCompleted:
				assert.True(t, e.Task.Completed)
			}
		}
	}
}

func TestView_Empty(t *testing.T) {
	assert.Empty(t, View(nil, "", FilterAll))
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{
		"":          FilterAll,
		"all":       FilterAll,
		"Completed": FilterCompleted,
		" pending ": FilterPending,
	} {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := ParseFilter("done")
	assert.Error(t, err)
	assert.Equal(t, FilterAll, got)
}

func TestFilter_NextCycles(t *testing.T) {
	assert.Equal(t, FilterPending, FilterAll.Next())
	assert.Equal(t, FilterCompleted, FilterPending.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())
}
