package awstanding

import (
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogInvalidParameters(names []string)
	LogUnmatchedParameters(names []string)
	LogSuppressedError(name string, err error)
	LogInstalled(keys []string)
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogInvalidParameters(names []string) {
	l.Logger.Warn("ignoring invalid parameters", zap.Strings("names", names))
}

func (l zapLogger) LogUnmatchedParameters(names []string) {
	l.Logger.Warn("ignoring parameters that match no lookup key", zap.Strings("names", names))
}

func (l zapLogger) LogSuppressedError(name string, err error) {
	l.Logger.Error("suppressed parameter resolve error", zap.String("name", name), zap.Error(err))
}

func (l zapLogger) LogInstalled(keys []string) {
	l.Logger.Debug("installed environment variables", zap.Strings("keys", keys))
}

// NewZapLogger returns a Logger that writes to a child of l named "awstanding".
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{l.Named("awstanding")}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return zapLogger{zap.NewNop()}
}

// TestLogger counts calls and forwards them to the test log.
type TestLogger struct {
	tb testing.TB

	NumLogInvalidParameters   int64
	NumLogUnmatchedParameters int64
	NumLogSuppressedError     int64
	NumLogInstalled           int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogInvalidParameters(names []string) {
	atomic.AddInt64(&l.NumLogInvalidParameters, 1)
	l.tb.Logf("awstanding: ignoring invalid parameters: %v", names)
}

func (l *TestLogger) LogUnmatchedParameters(names []string) {
	atomic.AddInt64(&l.NumLogUnmatchedParameters, 1)
	l.tb.Logf("awstanding: ignoring unmatched parameters: %v", names)
}

func (l *TestLogger) LogSuppressedError(name string, err error) {
	atomic.AddInt64(&l.NumLogSuppressedError, 1)
	l.tb.Logf("awstanding: suppressed resolve error for %s: %s", name, err)
}

func (l *TestLogger) LogInstalled(keys []string) {
	atomic.AddInt64(&l.NumLogInstalled, 1)
	l.tb.Logf("awstanding: installed %v", keys)
}

var _ Logger = &TestLogger{}
