package repository_test

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"minitask/internal/artifact"
	"minitask/internal/repository"
	"minitask/internal/service"
	"minitask/internal/testutil"
)

// memStore is an in-memory Store that counts writes.
type memStore struct {
	model    service.Model
	writes   int
	writeErr error
	sealed   bool
}

func newMemStore(tasks ...service.Task) *memStore {
	m := service.DefaultModel()
	m.Tasks = append(m.Tasks, tasks...)
	return &memStore{model: m, sealed: true}
}

func (s *memStore) Read() service.Model {
	m := service.Model{Config: map[string]any{}, Tasks: make([]service.Task, len(s.model.Tasks))}
	for k, v := range s.model.Config {
		m.Config[k] = v
	}
	copy(m.Tasks, s.model.Tasks)
	return m
}

func (s *memStore) Write(m service.Model) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.model = m
	return nil
}

func (s *memStore) Seal() (bool, error) {
	if s.sealed {
		return false, nil
	}
	s.sealed = true
	return true, nil
}

func TestAddThenList(t *testing.T) {
	store := newMemStore()
	repo := repository.New(store, nil)
	ctx := context.Background()

	task, err := repo.Add(ctx, "Do the dishes", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "Do the dishes" {
		t.Errorf("expected title 'Do the dishes', got %q", task.Title)
	}

	tasks, err := repo.List(ctx, service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []service.Task{{Title: "Do the dishes"}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("expected %v, got %v", want, tasks)
	}
	if store.writes != 1 {
		t.Errorf("expected 1 write, got %d", store.writes)
	}
}

func TestAdd_AppendsDuplicates(t *testing.T) {
	store := newMemStore(service.Task{Title: "Buy milk"})
	repo := repository.New(store, nil)

	if _, err := repo.Add(context.Background(), "Buy milk", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.model.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(store.model.Tasks))
	}
}

func TestAdd_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\n"} {
		store := newMemStore(service.Task{Title: "existing"})
		repo := repository.New(store, nil)

		_, err := repo.Add(context.Background(), title, "")
		if !errors.Is(err, service.ErrInvalidTask) {
			t.Errorf("title %q: expected ErrInvalidTask, got %v", title, err)
		}
		if store.writes != 0 {
			t.Errorf("title %q: expected no writes, got %d", title, store.writes)
		}
		if len(store.model.Tasks) != 1 {
			t.Errorf("title %q: tasks changed: %v", title, store.model.Tasks)
		}
	}
}

func TestAdd_InvalidEffort(t *testing.T) {
	store := newMemStore()
	repo := repository.New(store, nil)

	_, err := repo.Add(context.Background(), "Paint fence", "huge")
	if !errors.Is(err, service.ErrInvalidEffort) {
		t.Errorf("expected ErrInvalidEffort, got %v", err)
	}
	if store.writes != 0 {
		t.Errorf("expected no writes, got %d", store.writes)
	}
}

func TestAdd_WriteError(t *testing.T) {
	store := newMemStore()
	store.writeErr = artifact.ErrBoundaryNotFound
	repo := repository.New(store, nil)

	_, err := repo.Add(context.Background(), "Paint fence", "")
	if !errors.Is(err, artifact.ErrBoundaryNotFound) {
		t.Errorf("expected ErrBoundaryNotFound, got %v", err)
	}
}

func TestList_Idempotent(t *testing.T) {
	store := newMemStore(service.Task{Title: "a"}, service.Task{Title: "b"})
	repo := repository.New(store, nil)
	ctx := context.Background()

	first, err := repo.List(ctx, service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.List(ctx, service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("list changed between calls: %v vs %v", first, second)
	}
	if store.writes != 0 {
		t.Errorf("list should not write, got %d writes", store.writes)
	}
}

func TestList_EffortFilter(t *testing.T) {
	store := newMemStore(
		service.Task{Title: "a", Effort: service.EffortSmall},
		service.Task{Title: "b", Effort: service.EffortLarge},
		service.Task{Title: "c", Effort: service.EffortSmall},
	)
	repo := repository.New(store, nil)

	tasks, err := repo.List(context.Background(), service.Filter{Effort: service.EffortSmall})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "a" || tasks[1].Title != "c" {
		t.Errorf("unexpected filtered tasks: %v", tasks)
	}
}

func TestTake(t *testing.T) {
	store := newMemStore(service.Task{Title: "first"}, service.Task{Title: "second"})
	repo := repository.New(store, nil)

	task, ok, err := repo.Take(context.Background(), service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || task.Title != "first" {
		t.Errorf("expected first task, got %v (ok=%v)", task, ok)
	}
	if len(store.model.Tasks) != 2 {
		t.Error("take should not remove the task")
	}
	if store.writes != 0 {
		t.Errorf("take should not write, got %d writes", store.writes)
	}
}

func TestTake_Empty(t *testing.T) {
	repo := repository.New(newMemStore(), nil)

	_, ok, err := repo.Take(context.Background(), service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no task")
	}
}

func TestTake_FilterNoMatch(t *testing.T) {
	repo := repository.New(newMemStore(service.Task{Title: "a", Effort: service.EffortLarge}), nil)

	_, ok, err := repo.Take(context.Background(), service.Filter{Effort: service.EffortSmall})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no task")
	}
}

func TestRandom(t *testing.T) {
	store := newMemStore(service.Task{Title: "a"}, service.Task{Title: "b"}, service.Task{Title: "c"})
	repo := repository.New(store, nil)

	var gotN int
	repo.SetPicker(func(n int) int {
		gotN = n
		return 2
	})

	task, ok, err := repo.Random(context.Background(), service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || task.Title != "c" {
		t.Errorf("expected task c, got %v (ok=%v)", task, ok)
	}
	if gotN != 3 {
		t.Errorf("expected picker over 3 tasks, got %d", gotN)
	}
	if store.writes != 0 {
		t.Errorf("random should not write, got %d writes", store.writes)
	}
}

func TestRandom_Empty(t *testing.T) {
	repo := repository.New(newMemStore(), nil)
	repo.SetPicker(func(n int) int {
		t.Fatal("picker must not be called on an empty list")
		return 0
	})

	_, ok, err := repo.Random(context.Background(), service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no task")
	}
}

func TestCompleteAndDefer_NotImplemented(t *testing.T) {
	store := newMemStore(service.Task{Title: "a"})
	repo := repository.New(store, nil)
	ctx := context.Background()

	if err := repo.Complete(ctx, "a"); !errors.Is(err, service.ErrNotImplemented) {
		t.Errorf("complete: expected ErrNotImplemented, got %v", err)
	}
	if err := repo.Defer(ctx, ""); !errors.Is(err, service.ErrNotImplemented) {
		t.Errorf("defer: expected ErrNotImplemented, got %v", err)
	}
	if store.writes != 0 {
		t.Errorf("expected no writes, got %d", store.writes)
	}
}

func TestCancelledContext(t *testing.T) {
	store := newMemStore()
	repo := repository.New(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Add(ctx, "a", ""); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if store.writes != 0 {
		t.Errorf("expected no writes, got %d", store.writes)
	}
}

func TestInit(t *testing.T) {
	store := newMemStore()
	store.sealed = false
	repo := repository.New(store, nil)

	sealed, err := repo.Init(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sealed {
		t.Error("expected store to be sealed")
	}

	sealed, err = repo.Init(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sealed {
		t.Error("expected second init to be a no-op")
	}
}

// TestArtifactBacked runs the repository against a real artifact file.
func TestArtifactBacked(t *testing.T) {
	path := testutil.WriteArtifact(t, "#!/bin/sh\nexit 0\n")
	repo := repository.New(artifact.New(path, nil), nil)
	ctx := context.Background()

	if _, err := repo.Add(ctx, "before init", ""); !errors.Is(err, artifact.ErrBoundaryNotFound) {
		t.Fatalf("expected ErrBoundaryNotFound before init, got %v", err)
	}

	if _, err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := repo.Add(ctx, "Do the dishes", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Add(ctx, "record the TV program", service.EffortMedium); err != nil {
		t.Fatalf("add: %v", err)
	}

	tasks, err := repo.List(ctx, service.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []service.Task{
		{Title: "Do the dishes"},
		{Title: "record the TV program", Effort: service.EffortMedium},
	}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("expected %v, got %v", want, tasks)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	wantContent := "#!/bin/sh\nexit 0\n\n__END__\n" +
		`{"config":{},"tasks":[{"title":"Do the dishes"},{"title":"record the TV program","effort":"medium"}]}` + "\n"
	if string(data) != wantContent {
		t.Errorf("expected artifact %q, got %q", wantContent, string(data))
	}
}
