// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"todo/internal/backend"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/datefmt"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list open tasks
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	locale    string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.locale, "locale", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leading "-" left over after parsing was not a known flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	if common.locale != "" {
		cfg.Locale = common.locale
	}

	log, closer := logging.New(logging.Options{
		Debug:  cfg.Debug,
		File:   cfg.LogFile,
		Stderr: errOut,
	})
	defer closer.Close()
	ctx = logging.NewContext(ctx, log)

	log.WithFields(logrus.Fields{
		"command":    cmd.Name(),
		"config_dir": cfg.Dir,
		"backend":    cfg.Backend,
		"locale":     cfg.Locale,
	}).Debug("running command")
	if !datefmt.Supported(cfg.Locale) {
		log.WithField("locale", cfg.Locale).Warnf("unsupported locale, using %s", datefmt.DefaultLocale)
	}

	var svc service.Service
	if cmd.NeedsService() {
		factory := d.factory
		if factory == nil {
			factory = backend.New
		}
		svc, err = factory(ctx, cfg, log)
		if err != nil {
			if backend.IsAuthError(err) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"exit":    exitcode.Name(code),
	}).Debug("command finished")
	return code
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	default:
		return errStr
	}
}
