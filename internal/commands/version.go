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

// Version is the application version. Set at build time.
var Version = "1.0.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and task store path" }
func (c *VersionCmd) Usage() string     { return "minitask version" }
func (c *VersionCmd) NeedsStore() bool  { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	path, err := cfg.ArtifactPath()
	if err != nil {
		fmt.Fprintf(out, "minitask %s\n", Version)
		return exitcode.Success
	}
	fmt.Fprintf(out, "minitask %s %s\n", Version, path)
	return exitcode.Success
}
