package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "minitask help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  minitask                    List all tasks")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += ", " + aliases[0]
		}
		fmt.Fprintf(out, "  %-26s  %s\n", name, cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Common flags:
  --config <dir>      Override config directory
  --artifact <path>   Use this file as the task store instead of the executable
  --json              JSON output
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr

Effort (add, list, take, random):
  --effort, -e small|medium|large
`
