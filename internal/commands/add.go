package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	effort string
}

// SetEffort sets the effort (for testing).
func (c *AddCmd) SetEffort(effort string) {
	c.effort = effort
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"a"} }
func (c *AddCmd) Synopsis() string  { return "Add a new task" }
func (c *AddCmd) Usage() string     { return "minitask add [--effort <size>] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	registerEffortFlag(fs, &c.effort)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form title; the service rejects a blank one
	title := strings.Join(args, " ")

	task, err := svc.Add(ctx, title, service.Effort(c.effort))
	if err != nil {
		return reportError(errOut, c.Name(), err)
	}

	// The task is already saved; a failed print does not undo it
	msg := fmt.Sprintf("Task '%s' added", task.Title)
	if err := output.New(out, cfg.JSON(), cfg.Quiet).Success(msg); err != nil {
		return reportOutputError(errOut, err)
	}
	return exitcode.Success
}
