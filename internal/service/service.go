// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the task-list operations available to commands.
// Implementations load fresh state for every call; nothing is cached
// between calls.
type Service interface {
	// List returns the tasks matching f in insertion order.
	List(ctx context.Context, f Filter) ([]Task, error)

	// Add appends a task and persists it.
	// Returns ErrInvalidTask for a blank title.
	Add(ctx context.Context, title string, effort Effort) (Task, error)

	// Take returns the first task matching f without removing it.
	// ok is false when no task matches.
	Take(ctx context.Context, f Filter) (task Task, ok bool, err error)

	// Random returns a uniformly chosen task matching f.
	// ok is false when no task matches.
	Random(ctx context.Context, f Filter) (task Task, ok bool, err error)

	// Complete marks a task done. Not implemented: returns ErrNotImplemented.
	Complete(ctx context.Context, ref string) error

	// Defer pushes a task out by one month. Not implemented: returns ErrNotImplemented.
	Defer(ctx context.Context, ref string) error

	// Init seals the artifact with an empty data segment if it has none.
	// Returns false when the artifact was already sealed.
	Init(ctx context.Context) (bool, error)
}

// Remote is the subset of a hosted task service used by export.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
