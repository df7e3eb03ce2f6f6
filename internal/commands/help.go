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
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todo help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}

	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  todo                               List open tasks\n")
	for _, cmd := range registry.All() {
		line := cmd.Usage()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-34s %s\n", line, cmd.Synopsis())
	}
	b.WriteString(commonFlagsHelp)

	fmt.Fprint(out, b.String())
	return exitcode.Success
}

const commonFlagsHelp = `
Common flags:
  --config <dir>   Override config directory
  --locale <tag>   Locale for dates (e.g. en-US, de-DE)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Task numbers are positions shown by 'todo list --all'.
`
