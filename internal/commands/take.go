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
	Register(&TakeCmd{})
	Register(&RandomCmd{})
}

// TakeCmd implements the take command: show the next task without removing it.
type TakeCmd struct {
	effort string
}

// SetEffort sets the effort filter (for testing).
func (c *TakeCmd) SetEffort(effort string) {
	c.effort = effort
}

func (c *TakeCmd) Name() string      { return "take" }
func (c *TakeCmd) Aliases() []string { return []string{"t"} }
func (c *TakeCmd) Synopsis() string  { return "Take the next task" }
func (c *TakeCmd) Usage() string     { return "minitask take [--effort <size>]" }
func (c *TakeCmd) NeedsStore() bool  { return true }

func (c *TakeCmd) RegisterFlags(fs *flag.FlagSet) {
	registerEffortFlag(fs, &c.effort)
}

func (c *TakeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runPick(ctx, cfg, c.Name(), c.effort, svc.Take, out, errOut)
}

// RandomCmd implements the random command.
type RandomCmd struct {
	effort string
}

// SetEffort sets the effort filter (for testing).
func (c *RandomCmd) SetEffort(effort string) {
	c.effort = effort
}

func (c *RandomCmd) Name() string      { return "random" }
func (c *RandomCmd) Aliases() []string { return []string{"r"} }
func (c *RandomCmd) Synopsis() string  { return "Take a random task" }
func (c *RandomCmd) Usage() string     { return "minitask random [--effort <size>]" }
func (c *RandomCmd) NeedsStore() bool  { return true }

func (c *RandomCmd) RegisterFlags(fs *flag.FlagSet) {
	registerEffortFlag(fs, &c.effort)
}

func (c *RandomCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runPick(ctx, cfg, c.Name(), c.effort, svc.Random, out, errOut)
}

type pickFunc func(ctx context.Context, f service.Filter) (service.Task, bool, error)

// runPick is the shared implementation for take and random.
func runPick(ctx context.Context, cfg *config.Config, name, effort string, pick pickFunc, out, errOut io.Writer) int {
	filter, err := parseFilter(effort)
	if err != nil {
		return reportError(errOut, name, err)
	}

	task, ok, err := pick(ctx, filter)
	if err != nil {
		return reportError(errOut, name, err)
	}

	if err := output.New(out, cfg.JSON(), cfg.Quiet).Task(task, ok); err != nil {
		return reportOutputError(errOut, err)
	}
	return exitcode.Success
}
