package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"minitask/internal/backend/googletasks"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
)

// RemoteFactory creates the Google Tasks client used by export.
// Tests replace it with a fake.
var RemoteFactory = func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	return googletasks.New(ctx, cfg)
}

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ExportCmd) SetListName(name string) {
	c.listName = name
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Copy all tasks to Google Tasks" }
func (c *ExportCmd) Usage() string     { return "minitask export [--list <list-name>]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	remote, err := RemoteFactory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v (run: minitask login)\n", err)
		return exitcode.AuthError
	}

	tasks, err := svc.List(ctx, service.Filter{})
	if err != nil {
		return reportError(errOut, c.Name(), err)
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.Settings.ExportList
	}

	var list service.TaskList
	if listName != "" {
		list, err = remote.ResolveList(ctx, listName)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
				return exitcode.UserError
			}
			if strings.Contains(err.Error(), "ambiguous") {
				fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
				return exitcode.UserError
			}
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.StoreError
		}
	} else {
		list, err = remote.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.StoreError
		}
	}

	for i, task := range tasks {
		if err := remote.CreateTask(ctx, list.ID, task.Title); err != nil {
			fmt.Fprintf(errOut, "error: backend error: exported %d of %d tasks: %v\n", i, len(tasks), err)
			return exitcode.StoreError
		}
	}

	msg := fmt.Sprintf("Exported %d tasks to %s", len(tasks), list.Title)
	if err := output.New(out, cfg.JSON(), cfg.Quiet).Success(msg); err != nil {
		return reportOutputError(errOut, err)
	}
	return exitcode.Success
}
