// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"todo/internal/service"
	"todo/internal/task"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are allocated sequentially and never reused, like the SQLite store.
type FakeService struct {
	mu     sync.RWMutex
	tasks  map[int]task.Task
	nextID int

	// Error injection for testing
	ListTasksErr      error
	GetTaskErr        error
	CreateTaskErr     error
	PutTaskErr        error
	ImportTasksErr    error
	CompleteTaskErr   error
	ReopenTaskErr     error
	SetPriorityErr    error
	DeleteTaskErr     error
	PurgeCompletedErr error
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:  make(map[int]task.Task),
		nextID: 1,
	}
}

// AddTask stores an open task and returns its ID.
func (f *FakeService) AddTask(title string, p task.Priority) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(title, p)
}

// AddCompletedTask stores a completed task and returns its ID.
func (f *FakeService) AddCompletedTask(title string, p task.Priority) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.insert(title, p)
	t := f.tasks[id]
	t.Completed = true
	f.tasks[id] = t
	return id
}

// Task returns a stored task, for assertions.
func (f *FakeService) Task(id int) (task.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.tasks[id]
	return t, ok
}

// Len returns the number of stored tasks.
func (f *FakeService) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks)
}

func (f *FakeService) insert(title string, p task.Priority) int {
	id := f.nextID
	f.nextID++
	f.tasks[id] = task.Task{ID: id, Title: title, Priority: p}
	return id
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filter service.Filter) ([]task.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []task.Task
	for _, t := range f.tasks {
		if filter.Match(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (task.Task, error) {
	if f.GetTaskErr != nil {
		return task.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, notFound(id)
	}
	return t, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string, p task.Priority) (task.Task, error) {
	if f.CreateTaskErr != nil {
		return task.Task{}, f.CreateTaskErr
	}
	if _, err := task.New(0, title, p); err != nil {
		return task.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.insert(title, p)
	return f.tasks[id], nil
}

// PutTask implements service.Service.
func (f *FakeService) PutTask(ctx context.Context, t task.Task) error {
	if f.PutTaskErr != nil {
		return f.PutTaskErr
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == 0 {
		return fmt.Errorf("put task: %w: 0", task.ErrInvalidID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tasks[t.ID] = t
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	return nil
}

// ImportTasks implements service.Service. The batch is validated before
// any task is stored.
func (f *FakeService) ImportTasks(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	if f.ImportTasksErr != nil {
		return nil, f.ImportTasksErr
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := append([]task.Task(nil), tasks...)
	for _, t := range stored {
		if t.ID == 0 {
			continue
		}
		f.tasks[t.ID] = t
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	for i, t := range stored {
		if t.ID != 0 {
			continue
		}
		t.ID = f.insert(t.Title, t.Priority)
		f.tasks[t.ID] = t
		stored[i] = t
	}
	return stored, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id int) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	return f.update(id, func(t *task.Task) { t.Completed = true })
}

// ReopenTask implements service.Service.
func (f *FakeService) ReopenTask(ctx context.Context, id int) error {
	if f.ReopenTaskErr != nil {
		return f.ReopenTaskErr
	}
	return f.update(id, func(t *task.Task) { t.Completed = false })
}

// SetPriority implements service.Service.
func (f *FakeService) SetPriority(ctx context.Context, id int, p task.Priority) error {
	if f.SetPriorityErr != nil {
		return f.SetPriorityErr
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %s", task.ErrInvalidPriority, p)
	}
	return f.update(id, func(t *task.Task) { t.Priority = p })
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[id]; !ok {
		return notFound(id)
	}
	delete(f.tasks, id)
	return nil
}

// PurgeCompleted implements service.Service.
func (f *FakeService) PurgeCompleted(ctx context.Context) (int, error) {
	if f.PurgeCompletedErr != nil {
		return 0, f.PurgeCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for id, t := range f.tasks {
		if t.Completed {
			delete(f.tasks, id)
			n++
		}
	}
	return n, nil
}

func (f *FakeService) update(id int, fn func(*task.Task)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok {
		return notFound(id)
	}
	fn(&t)
	f.tasks[id] = t
	return nil
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", service.ErrNotFound, id)
}
