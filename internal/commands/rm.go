package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete tasks" }
func (c *RmCmd) Usage() string      { return "todo rm <n...>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	nums, err := ParseTaskRefs(args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	// Resolve every number before deleting so positions don't shift underneath us
	tasks, err := ResolveTasks(ctx, svc, nums)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, task := range tasks {
		if err := svc.DeleteTask(ctx, task.ID); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
