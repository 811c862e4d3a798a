package service

import "errors"

var (
	// ErrInvalidTask is returned when a task has no title.
	ErrInvalidTask = errors.New("invalid task: title required")

	// ErrInvalidEffort is returned for an effort outside small, medium, large.
	ErrInvalidEffort = errors.New("invalid effort")

	// ErrNotImplemented is returned by operations that have no effect yet.
	ErrNotImplemented = errors.New("not implemented")
)
