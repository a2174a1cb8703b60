package tracker

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/task-cli/internal/task"
)

func newTracker(t *testing.T, path string) (*Tracker, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.WarnLevel})
	clock := func() time.Time { return time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC) }
	store := task.NewStore(path, task.WithLogger(logger), task.WithClock(clock))
	require.NoError(t, store.Load())
	return New(store), &logs
}

func ids(tasks []task.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, tk := range tasks {
		out = append(out, tk.ID)
	}
	return out
}

func TestScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, task.DefaultFileName)
	tr, _ := newTracker(t, path)

	out, err := tr.Add("buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Task added successfully (ID: 1).", out.Message)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, task.StatusTodo, out.Tasks[0].Status)

	out, err = tr.Add("write report")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Tasks[0].ID)

	out, err = tr.SetStatus(1, task.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, "Status for task 1 changed to 'done'.", out.Message)

	done := tr.ListByStatus("done")
	assert.Equal(t, OutcomeOK, done.Kind)
	assert.Equal(t, []int{1}, ids(done.Tasks))

	out, err = tr.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "Task 2 deleted successfully.", out.Message)

	all := tr.List()
	assert.Equal(t, []int{1}, ids(all.Tasks))

	// Each invocation is a fresh process: reload from disk.
	reloaded, _ := newTracker(t, path)
	assert.Equal(t, tr.Store().Tasks(), reloaded.Store().Tasks())

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	fromEmpty, logs := newTracker(t, empty)
	assert.Equal(t, 0, fromEmpty.Store().Len())
	assert.Empty(t, logs.String())

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("[{oops"), 0644))
	fromCorrupt, logs := newTracker(t, corrupt)
	assert.Equal(t, 0, fromCorrupt.Store().Len())
	assert.Contains(t, logs.String(), "corrupted")
}

func TestAddIDsStrictlyIncrease(t *testing.T) {
	path := filepath.Join(t.TempDir(), task.DefaultFileName)
	tr, _ := newTracker(t, path)

	var got []int
	for i := 0; i < 6; i++ {
		out, err := tr.Add("task")
		require.NoError(t, err)
		got = append(got, out.Tasks[0].ID)
		if i%3 == 2 {
			_, err := tr.Delete(out.Tasks[0].ID)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
}

func TestAddContinuesFromPersistedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), task.DefaultFileName)
	first, _ := newTracker(t, path)
	for i := 0; i < 3; i++ {
		_, err := first.Add("task")
		require.NoError(t, err)
	}
	_, err := first.Delete(2)
	require.NoError(t, err)

	second, _ := newTracker(t, path)
	out, err := second.Add("next")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Tasks[0].ID)
}

func TestAddRejectsEmptyDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), task.DefaultFileName)
	tr, _ := newTracker(t, path)

	for _, desc := range []string{"", "   ", "\t\n"} {
		out, err := tr.Add(desc)
		require.NoError(t, err)
		assert.Equal(t, OutcomeInvalid, out.Kind)
		assert.Equal(t, "Error: Missing description.", out.Message)
	}
	assert.Equal(t, 0, tr.Store().Len())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid input must not save")
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), task.DefaultFileName)
	tr, _ := newTracker(t, path)
	_, err := tr.Add("draft")
	require.NoError(t, err)
	before, _ := tr.Store().Find(1)
	created := before.CreatedAt

	later := time.Date(2026, time.October, 20, 10, 0, 0, 0, time.UTC)
	tr.store = task.NewStore(path, task.WithClock(func() time.Time { return later }))
	require.NoError(t, tr.store.Load())

	out, err := tr.Update(1, "final")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 updated successfully.", out.Message)

	got, ok := tr.Store().Find(1)
	require.True(t, ok)
	assert.Equal(t, "final", got.Description)
	assert.Equal(t, created, got.CreatedAt, "created_at never changes")
	assert.Equal(t, later.Format(time.ANSIC), got.UpdatedAt)
}

func TestMissingIDLeavesCollectionUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), task.DefaultFileName)
	tr, _ := newTracker(t, path)
	_, err := tr.Add("only")
	require.NoError(t, err)
	before := tr.Store().Tasks()
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)

	ops := map[string]func() (Outcome, error){
		"update": func() (Outcome, error) { return tr.Update(99, "x") },
		"delete": func() (Outcome, error) { return tr.Delete(99) },
		"status": func() (Outcome, error) { return tr.SetStatus(99, task.StatusDone) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			out, err := op()
			require.NoError(t, err)
			assert.Equal(t, OutcomeNotFound, out.Kind)
			assert.Equal(t, "Error: Task with ID 99 not found.", out.Message)
			assert.Equal(t, before, tr.Store().Tasks())

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, onDisk, after)
		})
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	tr, _ := newTracker(t, filepath.Join(t.TempDir(), task.DefaultFileName))
	_, err := tr.Add("x")
	require.NoError(t, err)

	out, err := tr.SetStatus(1, task.Status("blocked"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, out.Kind)
	got, _ := tr.Store().Find(1)
	assert.Equal(t, task.StatusTodo, got.Status)
}

func TestListEmpty(t *testing.T) {
	tr, _ := newTracker(t, filepath.Join(t.TempDir(), task.DefaultFileName))

	all := tr.List()
	assert.Equal(t, OutcomeEmpty, all.Kind)
	assert.Equal(t, "No tasks found.", all.Message)

	byStatus := tr.ListByStatus("done")
	assert.Equal(t, OutcomeEmpty, byStatus.Kind)
	assert.Equal(t, "No tasks with status 'done' found.", byStatus.Message)
}

func TestListByStatusFiltersExactly(t *testing.T) {
	tr, _ := newTracker(t, filepath.Join(t.TempDir(), task.DefaultFileName))
	statuses := []task.Status{task.StatusDone, task.StatusTodo, task.StatusInProgress, task.StatusDone, task.StatusTodo}
	for i, s := range statuses {
		_, err := tr.Add("t")
		require.NoError(t, err)
		_, err = tr.SetStatus(i+1, s)
		require.NoError(t, err)
	}

	tests := []struct {
		filter string
		want   []int
	}{
		{"done", []int{1, 4}},
		{"todo", []int{2, 5}},
		{"in-progress", []int{3}},
		{"DONE", nil},
		{"blocked", nil},
		{" done", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			out := tr.ListByStatus(tt.filter)
			if tt.want == nil {
				assert.Equal(t, OutcomeEmpty, out.Kind)
				assert.Empty(t, out.Tasks)
				return
			}
			assert.Equal(t, OutcomeOK, out.Kind)
			assert.Equal(t, tt.want, ids(out.Tasks))
		})
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	tr, _ := newTracker(t, filepath.Join(blocker, task.DefaultFileName))

	out, err := tr.Add("x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotPersisted))
	assert.Equal(t, OutcomeOK, out.Kind)
	assert.Equal(t, 1, tr.Store().Len(), "state stays updated in memory")
}

func TestRender(t *testing.T) {
	tr, _ := newTracker(t, filepath.Join(t.TempDir(), task.DefaultFileName))

	var buf bytes.Buffer
	tr.List().Render(&buf)
	assert.Equal(t, "No tasks found.\n", buf.String())

	_, err := tr.Add("buy milk")
	require.NoError(t, err)
	_, err = tr.Add("write report")
	require.NoError(t, err)

	buf.Reset()
	tr.List().Render(&buf)
	want := "\nAll Tasks:\n" +
		"• 1: buy milk [todo] (Created: Mon Oct 19 08:00:00 2026)\n" +
		"• 2: write report [todo] (Created: Mon Oct 19 08:00:00 2026)\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	out, err := tr.Delete(1)
	require.NoError(t, err)
	out.Render(&buf)
	assert.Equal(t, "Task 1 deleted successfully.\n", buf.String())
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "not-found", OutcomeNotFound.String())
	assert.Equal(t, "invalid", OutcomeInvalid.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "OutcomeKind(9)", OutcomeKind(9).String())
}
