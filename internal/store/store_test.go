package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/service"
	"todo/internal/task"
)

// setupTestStore opens an in-memory database for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CreateTask(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.CreateTask(ctx, "Buy milk", task.Low)
	require.NoError(t, err)
	assert.Equal(t, task.Task{ID: 1, Title: "Buy milk", Priority: task.Low}, first)

	second, err := s.CreateTask(ctx, "Buy eggs", task.High)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	got, err := s.GetTask(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_CreateTask_InvalidPriority(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateTask(context.Background(), "x", 0)
	assert.ErrorIs(t, err, task.ErrInvalidPriority)

	tasks, err := s.ListTasks(context.Background(), service.Filter{All: true})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStore_IDsNotReused(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a, err := s.CreateTask(ctx, "a", task.Low)
	require.NoError(t, err)
	b, err := s.CreateTask(ctx, "b", task.Low)
	require.NoError(t, err)
	require.NoError(t, s.DeleteTask(ctx, b.ID))

	c, err := s.CreateTask(ctx, "c", task.Low)
	require.NoError(t, err)
	assert.Greater(t, c.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestStore_GetTask_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetTask(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestStore_ListTasks_Filters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, tt := range []struct {
		title string
		p     task.Priority
	}{
		{"one", task.High},
		{"two", task.Low},
		{"three", task.High},
	} {
		_, err := s.CreateTask(ctx, tt.title, tt.p)
		require.NoError(t, err)
	}
	require.NoError(t, s.CompleteTask(ctx, 3))

	t.Run("open only", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, service.Filter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "one", tasks[0].Title)
		assert.Equal(t, "two", tasks[1].Title)
	})

	t.Run("all", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, service.Filter{All: true})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.True(t, tasks[2].Completed)
	})

	t.Run("by priority", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, service.Filter{All: true, Priority: task.High})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, 1, tasks[0].ID)
		assert.Equal(t, 3, tasks[1].ID)
	})
}

func TestStore_CompleteAndReopen(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Buy milk", task.Medium)
	require.NoError(t, err)

	require.NoError(t, s.CompleteTask(ctx, created.ID))
	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	require.NoError(t, s.ReopenTask(ctx, created.ID))
	got, err = s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	assert.ErrorIs(t, s.CompleteTask(ctx, 99), service.ErrNotFound)
	assert.ErrorIs(t, s.ReopenTask(ctx, 99), service.ErrNotFound)
}

func TestStore_SetPriority(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Buy milk", task.Low)
	require.NoError(t, err)

	require.NoError(t, s.SetPriority(ctx, created.ID, task.High))
	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.High, got.Priority)

	assert.ErrorIs(t, s.SetPriority(ctx, created.ID, task.Priority(9)), task.ErrInvalidPriority)
	assert.ErrorIs(t, s.SetPriority(ctx, 99, task.Low), service.ErrNotFound)
}

func TestStore_PutTask(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	t.Run("insert with explicit id", func(t *testing.T) {
		want := task.Task{ID: 10, Title: "Imported", Priority: task.High, Completed: true}
		require.NoError(t, s.PutTask(ctx, want))

		got, err := s.GetTask(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("replace existing", func(t *testing.T) {
		want := task.Task{ID: 10, Title: "Renamed", Priority: task.Low}
		require.NoError(t, s.PutTask(ctx, want))

		got, err := s.GetTask(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("next id follows imported ids", func(t *testing.T) {
		created, err := s.CreateTask(ctx, "after import", task.Medium)
		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		assert.ErrorIs(t, s.PutTask(ctx, task.Task{ID: 5, Title: "x"}), task.ErrInvalidPriority)
		assert.ErrorIs(t, s.PutTask(ctx, task.Task{Title: "x", Priority: task.Low}), task.ErrInvalidID)
	})
}

func TestStore_DeleteTask(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Buy milk", task.Low)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, created.ID))
	_, err = s.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, s.DeleteTask(ctx, created.ID), service.ErrNotFound)
}

func TestStore_PurgeCompleted(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.CreateTask(ctx, title, task.Medium)
		require.NoError(t, err)
	}
	require.NoError(t, s.CompleteTask(ctx, 1))
	require.NoError(t, s.CompleteTask(ctx, 3))

	n, err := s.PurgeCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks, err := s.ListTasks(ctx, service.Filter{All: true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Title)

	n, err = s.PurgeCompleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_CorruptPriorityRow(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Exec(
		"INSERT INTO tasks (id, title, priority, completed, created_at, updated_at) VALUES (1, 'x', 'urgent', 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
	).Error)

	_, err := s.GetTask(ctx, 1)
	assert.ErrorIs(t, err, ErrCorruptRow)
	assert.NotErrorIs(t, err, task.ErrInvalidPriority)
	assert.EqualError(t, err, `corrupt row 1: invalid priority: "urgent" (want low, medium or high)`)

	_, err = s.ListTasks(ctx, service.Filter{})
	assert.ErrorIs(t, err, ErrCorruptRow)
}

func TestStore_ImportTasks_FreshIDsAvoidImportedOnes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	stored, err := s.ImportTasks(ctx, []task.Task{
		{ID: 0, Title: "fresh", Priority: task.Low, Completed: true},
		{ID: 1, Title: "explicit", Priority: task.High},
	})
	require.NoError(t, err)
	assert.Equal(t, []task.Task{
		{ID: 2, Title: "fresh", Priority: task.Low, Completed: true},
		{ID: 1, Title: "explicit", Priority: task.High},
	}, stored)

	all, err := s.ListTasks(ctx, service.Filter{All: true})
	require.NoError(t, err)
	assert.Equal(t, []task.Task{stored[1], stored[0]}, all)

	next, err := s.CreateTask(ctx, "later", task.Medium)
	require.NoError(t, err)
	assert.Equal(t, 3, next.ID)
}

func TestStore_ImportTasks_RollsBack(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	existing, err := s.CreateTask(ctx, "keep me", task.Medium)
	require.NoError(t, err)

	_, err = s.ImportTasks(ctx, []task.Task{
		{ID: existing.ID, Title: "overwritten", Priority: task.High},
		{ID: 2, Title: "no priority"},
	})
	require.ErrorIs(t, err, task.ErrInvalidPriority)

	all, err := s.ListTasks(ctx, service.Filter{All: true})
	require.NoError(t, err)
	assert.Equal(t, []task.Task{existing}, all)
}

func TestOpen_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not sqlite "), 512), 0600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, "Buy milk", task.Low)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, task.Task{ID: 1, Title: "Buy milk", Priority: task.Low}, got)
}
