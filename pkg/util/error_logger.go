package util

import (
	"log"

	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// ErrorLogger may be used to report errors. Implementations may decide
// to log, mutate, redirect and discard them. This interface is used in
// places where errors are generated asynchronously or are recovered
// from locally, meaning they cannot be returned to the caller directly.
type ErrorLogger interface {
	Log(err error)
}

type defaultErrorLogger struct{}

func (l defaultErrorLogger) Log(err error) {
	log.Print(err)
}

// DefaultErrorLogger writes errors using Go's standard logging package.
var DefaultErrorLogger ErrorLogger = defaultErrorLogger{}

type zapErrorLogger struct {
	logger *zap.Logger
}

// NewZapErrorLogger creates an ErrorLogger that writes errors as
// structured log entries. The gRPC status code of the error is attached
// as a separate field, so that log processing can filter on it.
func NewZapErrorLogger(logger *zap.Logger) ErrorLogger {
	return zapErrorLogger{logger: logger}
}

func (l zapErrorLogger) Log(err error) {
	l.logger.Warn(
		status.Convert(err).Message(),
		zap.Stringer("code", status.Code(err)))
}
