// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
)

// Effort is the optional size estimate attached to a task.
type Effort string

const (
	EffortSmall  Effort = "small"
	EffortMedium Effort = "medium"
	EffortLarge  Effort = "large"
)

// ParseEffort validates an effort name. An empty string means no effort.
func ParseEffort(s string) (Effort, error) {
	switch e := Effort(strings.ToLower(strings.TrimSpace(s))); e {
	case "", EffortSmall, EffortMedium, EffortLarge:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidEffort, s)
	}
}

// Task represents a single task item.
type Task struct {
	Title  string `json:"title"`
	Effort Effort `json:"effort,omitempty"`
}

// Model is the persisted state embedded in the artifact.
type Model struct {
	Config map[string]any `json:"config"`
	Tasks  []Task         `json:"tasks"`
}

// DefaultModel returns the empty model used on first run and on corruption.
func DefaultModel() Model {
	return Model{
		Config: map[string]any{},
		Tasks:  []Task{},
	}
}

// Filter scopes read operations. The zero value matches every task.
type Filter struct {
	Effort Effort
}

// Match reports whether the task passes the filter.
func (f Filter) Match(t Task) bool {
	return f.Effort == "" || t.Effort == f.Effort
}
