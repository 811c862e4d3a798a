// Package repository implements service.Service over a model store.
package repository

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"minitask/internal/service"
)

// Store loads and persists the whole model.
type Store interface {
	// Read returns the stored model, or the default model if none is usable.
	Read() service.Model

	// Write replaces the stored model.
	Write(m service.Model) error

	// Seal prepares the store to hold a model. Returns false if it already could.
	Seal() (bool, error)
}

// Repository implements service.Service. Each call loads a fresh model,
// applies one operation and saves only if the operation changed it.
type Repository struct {
	store Store
	log   *slog.Logger
	pick  func(n int) int
}

// New creates a Repository backed by store.
func New(store Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		store: store,
		log:   logger,
		pick:  rand.IntN,
	}
}

// SetPicker replaces the random index source (for testing).
func (r *Repository) SetPicker(pick func(n int) int) {
	r.pick = pick
}

// withModel loads the model, runs fn and saves when fn reports a change.
// A failing fn never triggers a save.
func (r *Repository) withModel(ctx context.Context, fn func(m *service.Model) (changed bool, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := r.store.Read()
	changed, err := fn(&m)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return r.store.Write(m)
}

// List implements service.Service.
func (r *Repository) List(ctx context.Context, f service.Filter) ([]service.Task, error) {
	var result []service.Task
	err := r.withModel(ctx, func(m *service.Model) (bool, error) {
		result = matching(m.Tasks, f)
		return false, nil
	})
	return result, err
}

// Add implements service.Service.
func (r *Repository) Add(ctx context.Context, title string, effort service.Effort) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, service.ErrInvalidTask
	}
	effort, err := service.ParseEffort(string(effort))
	if err != nil {
		return service.Task{}, err
	}

	task := service.Task{Title: title, Effort: effort}
	err = r.withModel(ctx, func(m *service.Model) (bool, error) {
		m.Tasks = append(m.Tasks, task)
		return true, nil
	})
	if err != nil {
		return service.Task{}, err
	}
	r.log.Debug("task added", "title", title, "effort", effort)
	return task, nil
}

// Take implements service.Service.
func (r *Repository) Take(ctx context.Context, f service.Filter) (service.Task, bool, error) {
	var (
		task service.Task
		ok   bool
	)
	err := r.withModel(ctx, func(m *service.Model) (bool, error) {
		if tasks := matching(m.Tasks, f); len(tasks) > 0 {
			task, ok = tasks[0], true
		}
		return false, nil
	})
	return task, ok, err
}

// Random implements service.Service.
func (r *Repository) Random(ctx context.Context, f service.Filter) (service.Task, bool, error) {
	var (
		task service.Task
		ok   bool
	)
	err := r.withModel(ctx, func(m *service.Model) (bool, error) {
		if tasks := matching(m.Tasks, f); len(tasks) > 0 {
			task, ok = tasks[r.pick(len(tasks))], true
		}
		return false, nil
	})
	return task, ok, err
}

// Complete implements service.Service.
func (r *Repository) Complete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.log.Debug("complete requested", "ref", ref)
	return service.ErrNotImplemented
}

// Defer implements service.Service.
func (r *Repository) Defer(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.log.Debug("defer requested", "ref", ref)
	return service.ErrNotImplemented
}

// Init implements service.Service.
func (r *Repository) Init(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.store.Seal()
}

func matching(tasks []service.Task, f service.Filter) []service.Task {
	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}
