package xcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is returned when a watched signal arrives.
var ErrInterrupted = errors.New("xcmd: interrupted")

// WaitInterrupted blocks until one of signals (SIGINT and SIGTERM by default)
// is received or ctx is done.
func WaitInterrupted(ctx context.Context, signals ...os.Signal) error {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)
	defer signal.Stop(sigChan)

	select {
	case v := <-sigChan:
		return fmt.Errorf("%w: %s", ErrInterrupted, v)

	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run calls fn with a context that is canceled when a watched signal
// arrives. It returns fn's error, or ErrInterrupted if the signal came first.
func Run(ctx context.Context, fn func(ctx context.Context) error, signals ...os.Signal) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	group, _ := ErrGroup(ctx)

	group.Go(func(ctx context.Context) error {
		defer stop()
		return fn(ctx)
	})

	group.Go(func(ctx context.Context) error {
		if err := WaitInterrupted(ctx, signals...); errors.Is(err, ErrInterrupted) {
			return err
		}
		return nil
	})

	return group.Wait()
}
