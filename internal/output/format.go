// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minitask/internal/service"
)

const (
	// CheckMark prefixes success messages in text mode.
	CheckMark = "✓"

	// NoTasks is printed for an empty task list.
	NoTasks = "no tasks found"

	// NoTask is printed when take or random finds nothing.
	NoTask = "no task"
)

// Formatter renders command results in text or JSON.
type Formatter struct {
	w     io.Writer
	json  bool
	quiet bool
	check lipgloss.Style
}

// New creates a Formatter writing to w. The check mark is colored only
// when w is a terminal.
func New(w io.Writer, jsonMode, quiet bool) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:     w,
		json:  jsonMode,
		quiet: quiet,
		check: r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Tasks prints a task list.
// Text: one title per line, or "no tasks found" unless quiet.
// JSON: an array, empty when there are no tasks.
func (f *Formatter) Tasks(tasks []service.Task) error {
	if f.json {
		if tasks == nil {
			tasks = []service.Task{}
		}
		return f.encode(tasks)
	}
	if len(tasks) == 0 {
		if !f.quiet {
			_, err := fmt.Fprintln(f.w, NoTasks)
			return err
		}
		return nil
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintln(f.w, normalizeTitle(t.Title)); err != nil {
			return err
		}
	}
	return nil
}

// Task prints the result of take or random.
// Text: the title, or "no task" unless quiet. JSON: an object or null.
func (f *Formatter) Task(task service.Task, ok bool) error {
	if f.json {
		if !ok {
			return f.encode(nil)
		}
		return f.encode(task)
	}
	if !ok {
		if !f.quiet {
			_, err := fmt.Fprintln(f.w, NoTask)
			return err
		}
		return nil
	}
	_, err := fmt.Fprintln(f.w, normalizeTitle(task.Title))
	return err
}

// Success prints a confirmation. Quiet suppresses it in text mode only.
func (f *Formatter) Success(msg string) error {
	if f.json {
		return f.encode(map[string]string{"success": msg})
	}
	if f.quiet {
		return nil
	}
	_, err := fmt.Fprintf(f.w, "%s %s\n", f.check.Render(CheckMark), msg)
	return err
}

func (f *Formatter) encode(v any) error {
	return json.NewEncoder(f.w).Encode(v)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
