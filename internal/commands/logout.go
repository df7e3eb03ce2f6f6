package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd removes the stored Google token. With --client the OAuth client
// file goes too, so the next login starts from scratch.
type LogoutCmd struct {
	client bool
}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove stored Google credentials" }
func (c *LogoutCmd) Usage() string      { return "todo logout [--client]" }
func (c *LogoutCmd) NeedsService() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.client, "client", false, "")
}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	removed := false

	if cfg.HasToken() {
		if err := cfg.RemoveToken(); err != nil {
			fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
			return exitcode.AuthError
		}
		removed = true
	}

	if c.client {
		err := os.Remove(cfg.OAuthClientPath())
		switch {
		case err == nil:
			removed = true
		case !errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(errOut, "error: failed to remove %s: %v\n", config.OAuthClientFile, err)
			return exitcode.AuthError
		}
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	if removed {
		fmt.Fprintln(out, "ok")
	} else {
		fmt.Fprintln(out, "not logged in")
	}
	return exitcode.Success
}
