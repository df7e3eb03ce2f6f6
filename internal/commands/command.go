// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

// Command is a CLI subcommand. Implementations register themselves with
// DefaultRegistry from init.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis and Usage feed the help listing.
	Synopsis() string
	Usage() string

	// NeedsService reports whether Run needs a task backend. When false,
	// Run receives a nil Service and no credentials are checked.
	NeedsService() bool

	// RegisterFlags adds command-specific flags next to the common ones.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args and returns an exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
