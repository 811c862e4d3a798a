package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"minitask/internal/artifact"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

// reportError prints err to errOut with a prefix naming its kind and
// returns the matching exit code.
func reportError(errOut io.Writer, name string, err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidTask), errors.Is(err, service.ErrInvalidEffort):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotImplemented):
		fmt.Fprintf(errOut, "error: not implemented: %s\n", name)
		return exitcode.NotImplemented
	case errors.Is(err, artifact.ErrBoundaryNotFound):
		fmt.Fprintf(errOut, "error: store error: %v (run: minitask init)\n", err)
		return exitcode.StoreError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
}

// reportOutputError reports a failure to print a result. Any store change
// has already been saved, so this is never a store error.
func reportOutputError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: write output: %v\n", err)
	return exitcode.UserError
}

// parseFilter builds a read filter from an --effort value.
func parseFilter(effort string) (service.Filter, error) {
	e, err := service.ParseEffort(effort)
	if err != nil {
		return service.Filter{}, err
	}
	return service.Filter{Effort: e}, nil
}
