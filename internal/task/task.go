// Package task defines the task record shared by every other package.
package task

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned for negative task IDs.
var ErrInvalidID = errors.New("invalid task id")

// Task is a single to-do item.
type Task struct {
	ID        int      `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Priority  Priority `json:"priority" yaml:"priority"`
	Completed bool     `json:"completed" yaml:"completed"`
}

// New returns an open task, or an error if p is not a valid priority.
func New(id int, title string, p Priority) (Task, error) {
	t := Task{ID: id, Title: title, Priority: p}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the invariants a task carries on its own.
// ID uniqueness is the store's concern.
func (t Task) Validate() error {
	if t.ID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task %d: %w: %s", t.ID, ErrInvalidPriority, t.Priority)
	}
	return nil
}
