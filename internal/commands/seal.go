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
	Register(&InitCmd{})
}

// InitCmd implements the init command. A freshly built binary carries no
// data segment; init appends an empty one so later writes have a boundary.
type InitCmd struct{}

func (c *InitCmd) Name() string      { return "init" }
func (c *InitCmd) Aliases() []string { return nil }
func (c *InitCmd) Synopsis() string  { return "Embed an empty task store in the executable" }
func (c *InitCmd) Usage() string     { return "minitask init [common flags]" }
func (c *InitCmd) NeedsStore() bool  { return true }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sealed, err := svc.Init(ctx)
	if err != nil {
		return reportError(errOut, c.Name(), err)
	}

	msg := "Task store already initialized"
	if sealed {
		msg = "Task store initialized"
	}
	if err := output.New(out, cfg.JSON(), cfg.Quiet).Success(msg); err != nil {
		return reportOutputError(errOut, err)
	}
	return exitcode.Success
}
