package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/leshachaplin/eventreporter/internal/config"
	"github.com/leshachaplin/eventreporter/reporter"
)

var ErrHelp = errors.New("help requested")

type Command interface {
	Init(args []string) error
	Run(ctx context.Context) error
	Name() string
	Description() string
}

// Env is what commands share: loaded config, logger and output streams.
type Env struct {
	Config config.Config
	Logger zerolog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func (e Env) newClient() (*reporter.Client, error) {
	client, err := reporter.NewClient(e.Config.Reporter, e.Logger.With().Str("component", "reporter").Logger())
	if err != nil {
		return nil, fmt.Errorf("reporter config: %w", err)
	}
	return client, nil
}

type Commands []Command

func (c Commands) Usage(w io.Writer) {
	fmt.Fprintln(w, "Available subcommands:")
	for _, cmd := range c {
		fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.Description())
	}
}

func ParseFlags(args []string, env Env) (Command, error) {
	cmds := Commands{
		InstallCommand(env),
		SessionCommand(env),
		PurchaseCommand(env),
		SandboxCommand(env),
	}

	if len(args) < 1 {
		cmds.Usage(env.Stderr)
		return nil, errors.New("you must pass a subcommand")
	}

	subCmd := args[0]
	if subCmd == "help" || subCmd == "-h" || subCmd == "--help" {
		cmds.Usage(env.Stdout)
		return nil, ErrHelp
	}

	for _, cmd := range cmds {
		if cmd.Name() == subCmd {
			if err := cmd.Init(args[1:]); err != nil {
				return nil, err
			}
			return cmd, nil
		}
	}

	cmds.Usage(env.Stderr)
	return nil, fmt.Errorf("invalid subcommand %s", subCmd)
}
