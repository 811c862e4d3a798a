package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"minitask/internal/service"
)

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]string // listID -> titles

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	CreateTaskErr  error

	// FailAfter makes CreateTask fail once this many tasks were created.
	// Zero disables it.
	FailAfter int
}

// NewFakeRemote creates a new FakeRemote with a default list.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []service.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks: map[string][]string{DefaultListID: nil},
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// Titles returns the titles created in a list.
func (f *FakeRemote) Titles(listID string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.tasks[listID]...)
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, ErrAmbiguous
	}
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return ErrNotFound
	}
	if f.FailAfter > 0 && f.created() >= f.FailAfter {
		return errors.New("quota exceeded")
	}
	f.tasks[listID] = append(f.tasks[listID], title)
	return nil
}

func (f *FakeRemote) created() int {
	n := 0
	for _, titles := range f.tasks {
		n += len(titles)
	}
	return n
}
