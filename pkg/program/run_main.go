package program

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// runMainErrorLogger is used by RunMain() to capture errors returned by
// routines. Each error is logged. Shutdown is initiated as soon as the
// first error arrives.
type runMainErrorLogger struct {
	shutdownStarted sync.Once
	exitCode        int
	cancel          context.CancelFunc
}

func (el *runMainErrorLogger) Log(err error) {
	log.Print("Fatal error: ", err)
	el.startShutdown(1)
}

func (el *runMainErrorLogger) startShutdown(exitCode int) {
	el.shutdownStarted.Do(func() {
		el.exitCode = exitCode
		el.cancel()
	})
}

// RunMain runs a program that supports graceful termination. The
// program terminates once all routines have completed. If one of the
// routines fails, all others are canceled and the program exits with
// exit code 1. Upon receipt of SIGINT or SIGTERM all routines are
// canceled as well, after which the program exits with exit code 0.
func RunMain(routine Routine) {
	ctx, cancel := context.WithCancel(context.Background())
	errorLogger := &runMainErrorLogger{
		cancel: cancel,
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		receivedSignal := <-signalChan
		log.Printf("Received %#v signal. Initiating graceful shutdown.", receivedSignal.String())
		errorLogger.startShutdown(0)
	}()

	run(ctx, errorLogger, routine)
	errorLogger.startShutdown(0)
	os.Exit(errorLogger.exitCode)
}
