package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/leshachaplin/eventreporter/app/waiter"
	"github.com/leshachaplin/eventreporter/internal/config"
	appServer "github.com/leshachaplin/eventreporter/internal/server/http"
	"github.com/leshachaplin/eventreporter/internal/service"
	"github.com/leshachaplin/eventreporter/internal/storage/memory"
)

type LoadConfigFn func() (config.Config, error)

// App runs the sandbox analytics server.
type App struct {
	cfg      config.Config
	logger   zerolog.Logger
	server   *appServer.Server
	waiter   waiter.Waiter
	ctx      context.Context
	cancelFn context.CancelFunc
}

func New(loadConfigFn LoadConfigFn) *App {
	ctx, cancelFn := context.WithCancel(context.Background())
	cfg, err := loadConfigFn()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := NewZeroLogger(Level(cfg.LogLevel), os.Stderr)

	w := waiter.NewWaiter(ctx, cancelFn)

	return &App{
		cfg:      cfg,
		logger:   logger,
		waiter:   w,
		ctx:      ctx,
		cancelFn: cancelFn,
	}
}

func (a *App) Start() error {
	defer a.cancelFn()

	if a.cfg.Sandbox.AuthToken == "" {
		a.logger.Warn().Msg("sandbox token is not set, any bearer token is accepted")
	}

	eventService := service.New(memory.New(), a.logger.With().Str("SERVICE", "SANDBOX").Logger())
	handler := appServer.NewHandler(eventService, a.cfg.Sandbox.AuthToken, a.logger)

	a.server = appServer.New(a.cfg.Sandbox, handler)

	a.waitForServer()

	if err := a.waiter.Wait(); err != nil {
		a.logger.Error().Err(err).Msg("App crash.")
		return err
	}
	return nil
}

func (a *App) Stop() {
	a.cancelFn()
}

func (a *App) waitForServer() {
	a.waiter.Add(func(ctx context.Context) error {
		defer a.logger.Debug().Msg("server has been shutdown")

		group, gCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			defer a.logger.Debug().Msg("public server exited")
			a.logger.Info().Str("addr", a.cfg.Sandbox.Addr).Msg("starting sandbox server")
			err := a.server.ServePublic()
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-gCtx.Done()
			a.logger.Debug().Msg("shutting down the server")
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if err := a.server.ShutdownPublic(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("error while shutting down the server")
			}
			return nil
		})

		return group.Wait()
	})
}
