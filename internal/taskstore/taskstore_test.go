package taskstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-cli/internal/ledgererror"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return New(path, WithClock(func() time.Time { return testNow }))
}

func TestAddDefaultsAndTimestamps(t *testing.T) {
	s := newTestStore(t)

	task, err := s.Add("Write report", "quarterly numbers", "")
	require.NoError(t, err)

	assert.Equal(t, 1, task.ID)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.Equal(t, testNow, task.UpdatedAt)
	assert.Nil(t, task.CompletedAt)
}

func TestAddValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("  ", "desc", "")
	assert.True(t, ledgererror.IsValidation(err))

	_, err = s.Add("Task", "desc", "P4")
	assert.True(t, ledgererror.IsValidation(err))
}

func TestIDsSurviveDeletion(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Add("first", "", "P1")
	require.NoError(t, err)
	_, err = s.Delete(first.ID)
	require.NoError(t, err)

	second, err := s.Add("second", "", "P1")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID, "IDs are never reused")
}

func TestUpdatePartial(t *testing.T) {
	s := newTestStore(t)
	task, err := s.Add("Original", "original desc", "P2")
	require.NoError(t, err)

	title := "Renamed"
	updated, err := s.Update(task.ID, UpdateFields{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original desc", updated.Description)
	assert.Equal(t, "P2", updated.Priority)
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(99, UpdateFields{})
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestSetStatusStampsCompletion(t *testing.T) {
	s := newTestStore(t)
	task, err := s.Add("finishable", "", "")
	require.NoError(t, err)

	done, err := s.SetStatus(task.ID, StatusDone)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testNow, *done.CompletedAt)

	reopened, err := s.SetStatus(task.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt, "leaving DONE clears the stamp")
}

func TestSetStatusValidation(t *testing.T) {
	s := newTestStore(t)
	task, err := s.Add("task", "", "")
	require.NoError(t, err)

	_, err = s.SetStatus(task.ID, "BLOCKED")
	assert.True(t, ledgererror.IsValidation(err))
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)

	urgent, err := s.Add("urgent", "", "P1")
	require.NoError(t, err)
	_, err = s.Add("later", "", "P3")
	require.NoError(t, err)
	_, err = s.SetStatus(urgent.ID, StatusInProgress)
	require.NoError(t, err)

	all, err := s.List(ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "P1", all[0].Priority, "priority order")

	inProgress, err := s.List(ListFilter{Status: StatusInProgress})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, urgent.ID, inProgress[0].ID)

	low, err := s.List(ListFilter{Priority: PriorityLow})
	require.NoError(t, err)
	require.Len(t, low, 1)
}

func TestDocumentShape(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("task", "", "")
	require.NoError(t, err)

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "tasks")
	assert.Contains(t, doc, "lastId")
}

func TestCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0600))

	_, err := s.List(ListFilter{})
	var storageErr *ledgererror.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.True(t, storageErr.Corrupt)
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	tasks, err := s.List(ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
