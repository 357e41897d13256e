package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"todo/internal/service"
	"todo/internal/task"
)

// FakeDefaultListID is the ID of the list FakeRemote resolves for an empty name.
const FakeDefaultListID = "@default"

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu       sync.Mutex
	lists    []service.RemoteList
	inserted map[string][]task.Task // listID -> tasks

	// Error injection for testing
	ResolveListErr error
	CreateListErr  error
	InsertTaskErr  error
}

var _ service.Remote = (*FakeRemote)(nil)

// NewFakeRemote creates a FakeRemote whose default list is "My Tasks".
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists:    []service.RemoteList{{ID: FakeDefaultListID, Title: "My Tasks"}},
		inserted: make(map[string][]task.Task),
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.RemoteList{ID: id, Title: title})
}

// Inserted returns the tasks inserted into a list, ordered by ID.
func (f *FakeRemote) Inserted(listID string) []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	got := append([]task.Task(nil), f.inserted[listID]...)
	sort.Slice(got, func(i, j int) bool { return got[i].ID < got[j].ID })
	return got
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.ResolveListErr != nil {
		return service.RemoteList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return f.lists[0], nil
	}

	var matches []service.RemoteList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return service.RemoteList{}, fmt.Errorf("%w: %s", service.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, fmt.Errorf("%w: %s", service.ErrAmbiguousList, name)
	}
}

// CreateList implements service.Remote.
func (f *FakeRemote) CreateList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.CreateListErr != nil {
		return service.RemoteList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list := service.RemoteList{ID: fmt.Sprintf("list%d", len(f.lists)), Title: name}
	f.lists = append(f.lists, list)
	return list, nil
}

// InsertTask implements service.Remote.
func (f *FakeRemote) InsertTask(ctx context.Context, listID string, t task.Task) error {
	if f.InsertTaskErr != nil {
		return f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inserted[listID] = append(f.inserted[listID], t)
	return nil
}
