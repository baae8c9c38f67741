package program

import (
	"context"
	"sync"
)

type runLocalErrorLogger struct {
	shutdownStarted sync.Once
	firstError      error
	cancel          context.CancelFunc
}

func (el *runLocalErrorLogger) Log(err error) {
	el.shutdownStarted.Do(func() {
		el.firstError = err
		el.cancel()
	})
}

// RunLocal runs a set of routines until completion, returning the first
// error returned by any of them. All routines are canceled as soon as
// one of them fails.
func RunLocal(ctx context.Context, routine Routine) error {
	innerCtx, cancel := context.WithCancel(ctx)
	errorLogger := &runLocalErrorLogger{
		cancel: cancel,
	}
	run(innerCtx, errorLogger, routine)
	errorLogger.shutdownStarted.Do(cancel)
	return errorLogger.firstError
}
