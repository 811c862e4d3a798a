package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

func init() {
	Register(&CompleteCmd{})
	Register(&DeferCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct{}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"c"} }
func (c *CompleteCmd) Synopsis() string  { return "Complete a task (not implemented)" }
func (c *CompleteCmd) Usage() string     { return "minitask complete [task]" }
func (c *CompleteCmd) NeedsStore() bool  { return true }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Complete(ctx, strings.Join(args, " ")); err != nil {
		return reportError(errOut, c.Name(), err)
	}
	return exitcode.Success
}

// DeferCmd implements the defer command.
type DeferCmd struct{}

func (c *DeferCmd) Name() string      { return "defer" }
func (c *DeferCmd) Aliases() []string { return []string{"d"} }
func (c *DeferCmd) Synopsis() string  { return "Defer a task for one month (not implemented)" }
func (c *DeferCmd) Usage() string     { return "minitask defer [task]" }
func (c *DeferCmd) NeedsStore() bool  { return true }

func (c *DeferCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeferCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Defer(ctx, strings.Join(args, " ")); err != nil {
		return reportError(errOut, c.Name(), err)
	}
	return exitcode.Success
}
