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
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string      { return "todo done <n...>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return setCompleted(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd implements the undo command, reopening completed tasks.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Mark tasks not completed" }
func (c *UndoCmd) Usage() string      { return "todo undo <n...>" }
func (c *UndoCmd) NeedsService() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return setCompleted(ctx, cfg, svc, args, false, out, errOut)
}

// setCompleted is the shared implementation for done and undo.
// Titles are sent back unchanged since updates replace the whole task.
func setCompleted(ctx context.Context, cfg *config.Config, svc service.Service, args []string, completed bool, out, errOut io.Writer) int {
	nums, err := ParseTaskRefs(args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	tasks, err := ResolveTasks(ctx, svc, nums)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, task := range tasks {
		if task.Completed == completed {
			continue
		}
		if _, err := svc.UpdateTask(ctx, task.ID, task.Title, completed); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
