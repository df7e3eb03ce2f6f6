package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/datefmt"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	all     bool
	lenient bool
}

// SetAll sets whether completed tasks are shown (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

// SetLenient sets whether backend failures are logged and shown as an
// empty list (for testing).
func (c *ListCmd) SetLenient(lenient bool) {
	c.lenient = lenient
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todo list [--all] [--lenient]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
	fs.BoolVar(&c.lenient, "lenient", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var tasks []service.Task
	if c.lenient {
		// Failures are logged and read as an empty list; the exit code stays 0
		tasks = service.NewLenient(svc, logging.FromContext(ctx)).List(ctx)
	} else {
		var err error
		if tasks, err = svc.ListTasks(ctx); err != nil {
			return reportError(errOut, err)
		}
	}

	df := datefmt.NewFormatter(cfg.Locale)
	shown := 0
	for i, task := range tasks {
		if task.Completed && !c.all {
			continue
		}
		// Numbers are positions in the full list so they stay valid for done/rm
		output.FormatTask(out, i+1, localTime(task), df)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

func localTime(task service.Task) service.Task {
	if task.CreatedAt != nil {
		lt := task.CreatedAt.Local()
		task.CreatedAt = &lt
	}
	return task
}
