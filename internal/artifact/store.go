// Package artifact stores the task model inside the program's own executable.
//
// The artifact is laid out as program bytes, a marker line and a single data
// line:
//
//	<program bytes>\n__END__\n{"config":{},"tasks":[...]}\n
//
// Rewrites keep every byte up to and including the marker line and replace
// only the data line. The replacement goes through a temp file and a rename
// so the artifact is never left half-written.
package artifact

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"minitask/internal/service"
)

// ErrBoundaryNotFound is returned when the artifact has no marker line
// followed by a single data line.
var ErrBoundaryNotFound = errors.New("data boundary not found")

// Store reads and rewrites the data segment of one artifact file.
type Store struct {
	path string
	log  *slog.Logger

	// beforeRename runs after the temp file is complete and before it
	// replaces the artifact. Tests use it to simulate a failed rewrite.
	beforeRename func(tmpPath string) error
}

// New creates a Store for the artifact at path. A nil logger discards.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		path: path,
		log:  logger.With("artifact", path),
	}
}

// LocateBoundary returns the length of the preserved prefix: the program
// bytes plus the marker line.
func (s *Store) LocateBoundary() (int64, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read artifact: %w", err)
	}
	end, err := locate(content)
	if err != nil {
		return 0, err
	}
	return int64(end), nil
}

// Read returns the embedded model. It never fails: a missing artifact,
// missing marker or undecodable data all yield service.DefaultModel().
func (s *Store) Read() service.Model {
	content, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Debug("artifact unreadable, using empty model", "error", err)
		return service.DefaultModel()
	}
	end, err := locate(content)
	if err != nil {
		s.log.Debug("no data segment, using empty model", "error", err)
		return service.DefaultModel()
	}
	m, err := decode(content[end:])
	if err != nil {
		s.log.Debug("data segment corrupt, using empty model", "error", err)
		return service.DefaultModel()
	}
	return m
}

// Write replaces the data segment with m. The artifact is left untouched
// when encoding fails, the boundary is missing, or any filesystem step fails.
func (s *Store) Write(m service.Model) error {
	data, err := encode(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	end, err := locate(content)
	if err != nil {
		return err
	}

	next := make([]byte, 0, end+len(data)+1)
	next = append(next, content[:end]...)
	next = append(next, data...)
	next = append(next, '\n')

	if err := s.replace(next); err != nil {
		return fmt.Errorf("rewrite artifact: %w", err)
	}
	s.log.Debug("artifact rewritten", "tasks", len(m.Tasks), "bytes", len(data))
	return nil
}

// Seal appends a marker line and an empty model to an artifact that has
// none. It reports false, without writing, when the artifact is already
// sealed.
func (s *Store) Seal() (bool, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read artifact: %w", err)
	}
	if _, err := locate(content); err == nil {
		return false, nil
	}

	data, err := encode(service.DefaultModel())
	if err != nil {
		return false, fmt.Errorf("encode model: %w", err)
	}

	next := make([]byte, 0, len(content)+len(Marker)+len(data)+3)
	next = append(next, content...)
	next = append(next, markerLine()...)
	next = append(next, data...)
	next = append(next, '\n')

	if err := s.replace(next); err != nil {
		return false, fmt.Errorf("seal artifact: %w", err)
	}
	s.log.Debug("artifact sealed")
	return true, nil
}
