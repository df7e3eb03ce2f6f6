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

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version. With --debug it also prints the resolved
// settings, which helps when config.toml, .env and the environment disagree.
type VersionCmd struct{}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "todo version" }
func (c *VersionCmd) NeedsService() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todo %s\n", Version)
	if !cfg.Debug {
		return exitcode.Success
	}

	fmt.Fprintf(out, "config:  %s\n", cfg.Dir)
	fmt.Fprintf(out, "backend: %s\n", cfg.Backend)
	if cfg.Backend == config.BackendREST {
		apiURL := cfg.APIURL
		if apiURL == "" {
			apiURL = "(not set)"
		}
		fmt.Fprintf(out, "api_url: %s\n", apiURL)
		fmt.Fprintf(out, "token:   %t\n", cfg.APIToken != "")
	}
	fmt.Fprintf(out, "locale:  %s\n", cfg.Locale)
	return exitcode.Success
}
