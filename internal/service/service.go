// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"

	"todo/internal/task"
)

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrListNotFound is returned by a Remote when no list matches a name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned by a Remote when several lists share a name.
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// Filter selects tasks returned by ListTasks.
type Filter struct {
	// All includes completed tasks.
	All bool

	// Priority restricts results to one level. Zero means any.
	Priority task.Priority
}

// Match reports whether t passes the filter.
func (f Filter) Match(t task.Task) bool {
	if t.Completed && !f.All {
		return false
	}
	if f.Priority != 0 && t.Priority != f.Priority {
		return false
	}
	return true
}

// Service defines the interface for task storage operations.
// Commands never touch the database directly.
type Service interface {
	// ListTasks returns tasks matching the filter, ordered by ID.
	ListTasks(ctx context.Context, filter Filter) ([]task.Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id int) (task.Task, error)

	// CreateTask allocates a new ID and stores an open task.
	CreateTask(ctx context.Context, title string, p task.Priority) (task.Task, error)

	// PutTask inserts or replaces the task with t.ID.
	PutTask(ctx context.Context, t task.Task) error

	// ImportTasks stores a batch all-or-nothing. Tasks with an ID replace
	// the task with that ID; tasks with ID 0 get fresh IDs that collide
	// with none of the batch. Returns the stored tasks in input order.
	ImportTasks(ctx context.Context, tasks []task.Task) ([]task.Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, id int) error

	// ReopenTask marks a completed task as open again.
	ReopenTask(ctx context.Context, id int) error

	// SetPriority changes the priority of a task.
	SetPriority(ctx context.Context, id int, p task.Priority) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int) error

	// PurgeCompleted deletes every completed task and returns how many
	// were removed.
	PurgeCompleted(ctx context.Context) (int, error)
}
