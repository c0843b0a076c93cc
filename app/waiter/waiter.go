package waiter

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type WaitFunc func(ctx context.Context) error

// Waiter runs the added functions until one fails, the parent context is
// canceled or one of the configured signals arrives.
type Waiter interface {
	Add(fns ...WaitFunc)
	Wait() error
	Context() context.Context
	CancelFunc() context.CancelFunc
}

type waiterCfg struct {
	signals []os.Signal
}

type waiter struct {
	ctx      context.Context
	cancelFn context.CancelFunc
	fns      []WaitFunc
}

func NewWaiter(ctx context.Context, cancelFn context.CancelFunc, options ...Option) Waiter {
	cfg := &waiterCfg{
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, option := range options {
		option(cfg)
	}

	w := &waiter{
		fns: []WaitFunc{},
	}
	w.ctx, w.cancelFn = signal.NotifyContext(ctx, cfg.signals...)
	w.ctx, w.cancelFn = withCancels(w.ctx, w.cancelFn, cancelFn)

	return w
}

func (w *waiter) Add(fns ...WaitFunc) {
	w.fns = append(w.fns, fns...)
}

func (w *waiter) Wait() error {
	group, gCtx := errgroup.WithContext(w.ctx)

	group.Go(func() error {
		<-gCtx.Done()
		w.cancelFn()
		return nil
	})

	for _, fn := range w.fns {
		waitFn := fn
		group.Go(func() error { return waitFn(gCtx) })
	}

	return group.Wait()
}

func (w *waiter) Context() context.Context {
	return w.ctx
}

func (w *waiter) CancelFunc() context.CancelFunc {
	return w.cancelFn
}

func withCancels(ctx context.Context, cancels ...context.CancelFunc) (context.Context, context.CancelFunc) {
	return ctx, func() {
		for _, cancel := range cancels {
			if cancel != nil {
				cancel()
			}
		}
	}
}
