package cli

import (
	"context"
	"flag"

	"github.com/leshachaplin/eventreporter/app"
	"github.com/leshachaplin/eventreporter/internal/config"
)

type sandboxCommand struct {
	fs  *flag.FlagSet
	env Env
	cfg config.Config
}

func SandboxCommand(env Env) Command {
	cmd := &sandboxCommand{
		fs:  flag.NewFlagSet("sandbox", flag.ContinueOnError),
		env: env,
		cfg: env.Config,
	}
	cmd.fs.SetOutput(env.Stderr)

	cmd.fs.StringVar(&cmd.cfg.Sandbox.Addr, "addr", env.Config.Sandbox.Addr, "Listen address")
	cmd.fs.StringVar(&cmd.cfg.Sandbox.AuthToken, "token", env.Config.Sandbox.AuthToken, "Accepted bearer token, any when empty")

	return cmd
}

func (c *sandboxCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

// Run blocks until the process receives SIGINT or SIGTERM.
func (c *sandboxCommand) Run(_ context.Context) error {
	return app.New(func() (config.Config, error) {
		return c.cfg, nil
	}).Start()
}

func (c *sandboxCommand) Name() string {
	return c.fs.Name()
}

func (c *sandboxCommand) Description() string {
	return "Run a local server speaking the analytics API"
}
