package service

import (
	"context"

	"todo/internal/task"
)

// Remote is a task list hosted elsewhere that local tasks can be copied to.
type Remote interface {
	// ResolveList finds a remote list by name (case-insensitive, trimmed).
	// An empty name selects the remote's default list.
	ResolveList(ctx context.Context, name string) (RemoteList, error)

	// CreateList creates a remote list and returns it.
	CreateList(ctx context.Context, name string) (RemoteList, error)

	// InsertTask copies t into the remote list.
	InsertTask(ctx context.Context, listID string, t task.Task) error
}

// RemoteList identifies a list on a Remote.
type RemoteList struct {
	ID    string
	Title string
}
