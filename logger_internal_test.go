package awstanding

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	t.Run("invalid parameters", func(t *testing.T) {
		logger.LogInvalidParameters([]string{"/a", "/b"})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, "ignoring invalid parameters", entries[0].Message)
		require.Equal(t, "awstanding", entries[0].LoggerName)
		require.Equal(t, zapcore.WarnLevel, entries[0].Level)
		require.Equal(t, []any{"/a", "/b"}, entries[0].ContextMap()["names"])
	})

	t.Run("unmatched parameters", func(t *testing.T) {
		logger.LogUnmatchedParameters([]string{"/x"})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, "ignoring parameters that match no lookup key", entries[0].Message)
		require.Equal(t, zapcore.WarnLevel, entries[0].Level)
		require.Equal(t, []any{"/x"}, entries[0].ContextMap()["names"])
	})

	t.Run("suppressed error", func(t *testing.T) {
		logger.LogSuppressedError("/a", errors.New("access denied"))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, "suppressed parameter resolve error", entries[0].Message)
		require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		require.Equal(t, "/a", entries[0].ContextMap()["name"])
		require.Equal(t, "access denied", entries[0].ContextMap()["error"])
	})

	t.Run("installed", func(t *testing.T) {
		logger.LogInstalled([]string{"A", "B"})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.LogInvalidParameters([]string{"/a"})
	logger.LogUnmatchedParameters([]string{"/a"})
	logger.LogSuppressedError("/a", errors.New("x"))
	logger.LogInstalled(nil)
}
