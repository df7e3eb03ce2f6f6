package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct{}

func (c *RenameCmd) Name() string       { return "rename" }
func (c *RenameCmd) Aliases() []string  { return []string{"edit"} }
func (c *RenameCmd) Synopsis() string   { return "Change a task title" }
func (c *RenameCmd) Usage() string      { return "todo rename <n> <title...>" }
func (c *RenameCmd) NeedsService() bool { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	tasks, err := ResolveTasks(ctx, svc, []int{num})
	if err != nil {
		return reportError(errOut, err)
	}
	task := tasks[0]

	if _, err := svc.UpdateTask(ctx, task.ID, title, task.Completed); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
