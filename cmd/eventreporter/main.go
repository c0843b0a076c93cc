package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/leshachaplin/eventreporter/app"
	"github.com/leshachaplin/eventreporter/internal/cli"
	"github.com/leshachaplin/eventreporter/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	cmd, err := cli.ParseFlags(os.Args[1:], cli.Env{
		Config: cfg,
		Logger: app.NewZeroLogger(app.Level(cfg.LogLevel), os.Stderr),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if errors.Is(err, cli.ErrHelp) || errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cmd.Run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
