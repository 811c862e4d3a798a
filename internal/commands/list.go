package commands

import (
	"context"
	"flag"
	"io"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `minitask` (no args) and `minitask list`.
type ListCmd struct {
	effort string
}

// SetEffort sets the effort filter (for testing).
func (c *ListCmd) SetEffort(effort string) {
	c.effort = effort
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"l"} }
func (c *ListCmd) Synopsis() string  { return "List all tasks" }
func (c *ListCmd) Usage() string     { return "minitask list [--effort <size>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	registerEffortFlag(fs, &c.effort)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := parseFilter(c.effort)
	if err != nil {
		return reportError(errOut, c.Name(), err)
	}

	tasks, err := svc.List(ctx, filter)
	if err != nil {
		return reportError(errOut, c.Name(), err)
	}

	if err := output.New(out, cfg.JSON(), cfg.Quiet).Tasks(tasks); err != nil {
		return reportOutputError(errOut, err)
	}
	return exitcode.Success
}

// registerEffortFlag binds --effort and -e to dst.
func registerEffortFlag(fs *flag.FlagSet, dst *string) {
	fs.StringVar(dst, "effort", "", "")
	fs.StringVar(dst, "e", "", "")
}
