// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"minitask/internal/service"
)

// DefaultListID is the ID used for the default remote list.
const DefaultListID = "@default"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("list not found")

// ErrAmbiguous is returned when multiple matches are found.
var ErrAmbiguous = errors.New("ambiguous list name")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	sealed bool

	// Pick chooses an index for Random. Defaults to the last candidate.
	Pick func(n int) int

	// Error injection for testing
	ListErr   error
	AddErr    error
	TakeErr   error
	RandomErr error
	InitErr   error

	// Writes counts calls that changed the stored tasks.
	Writes int
}

// NewFakeService creates a new, already sealed FakeService with no tasks.
func NewFakeService() *FakeService {
	return &FakeService{sealed: true}
}

// NewUnsealedFakeService creates a FakeService whose Init reports a fresh seal.
func NewUnsealedFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task directly, bypassing validation.
func (f *FakeService) AddTask(title string, effort service.Effort) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{Title: title, Effort: effort})
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.matching(filter), nil
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, title string, effort service.Effort) (service.Task, error) {
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, service.ErrInvalidTask
	}
	effort, err := service.ParseEffort(string(effort))
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{Title: title, Effort: effort}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	f.Writes++
	return task, nil
}

// Take implements service.Service.
func (f *FakeService) Take(ctx context.Context, filter service.Filter) (service.Task, bool, error) {
	if f.TakeErr != nil {
		return service.Task{}, false, f.TakeErr
	}
	candidates := f.matching(filter)
	if len(candidates) == 0 {
		return service.Task{}, false, nil
	}
	return candidates[0], true, nil
}

// Random implements service.Service.
func (f *FakeService) Random(ctx context.Context, filter service.Filter) (service.Task, bool, error) {
	if f.RandomErr != nil {
		return service.Task{}, false, f.RandomErr
	}
	candidates := f.matching(filter)
	if len(candidates) == 0 {
		return service.Task{}, false, nil
	}
	i := len(candidates) - 1
	if f.Pick != nil {
		i = f.Pick(len(candidates))
	}
	return candidates[i], true, nil
}

// Complete implements service.Service.
func (f *FakeService) Complete(ctx context.Context, ref string) error {
	return service.ErrNotImplemented
}

// Defer implements service.Service.
func (f *FakeService) Defer(ctx context.Context, ref string) error {
	return service.ErrNotImplemented
}

// Init implements service.Service.
func (f *FakeService) Init(ctx context.Context) (bool, error) {
	if f.InitErr != nil {
		return false, f.InitErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sealed {
		return false, nil
	}
	f.sealed = true
	f.Writes++
	return true, nil
}

func (f *FakeService) matching(filter service.Filter) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var result []service.Task
	for _, t := range f.tasks {
		if filter.Match(t) {
			result = append(result, t)
		}
	}
	return result
}
