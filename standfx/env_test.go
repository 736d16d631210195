package standfx_test

import (
	"testing"

	"github.com/advdv/awstanding/standfx"
	"github.com/advdv/awstanding/standfx/standfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseEnv_Defaults(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")

	env, err := standfx.ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, "awstanding", env.ServiceName)
	assert.Equal(t, zapcore.InfoLevel, env.LogLevel)
	assert.Equal(t, "none", env.OtelExporter)
	assert.Equal(t, "us-east-1", env.AWSRegion)
	assert.True(t, env.AllowInvalid)
	assert.Empty(t, env.Paths)
	assert.Empty(t, env.ParameterLookup())
	assert.Empty(t, env.SecretLookup())
}

func TestParseEnv_Lists(t *testing.T) {
	standfxtest.SetBaseEnv(t).
		Paths("/app,/shared").
		Parameters("/app/db-host=DB_HOST,/app/key:3=KEY").
		Secrets("prod/db=DB_SECRET").
		AllowInvalid("false").
		StoreRegion("eu-central-1")

	env, err := standfx.ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"/app", "/shared"}, env.Paths)
	assert.Equal(t, map[string]string{"/app/db-host": "DB_HOST", "/app/key:3": "KEY"}, env.Parameters)
	assert.Equal(t, "DB_HOST", env.ParameterLookup()["/app/db-host"].Name)
	assert.Equal(t, "DB_SECRET", env.SecretLookup()["prod/db"].Name)
	assert.False(t, env.AllowInvalid)
	assert.Equal(t, "eu-central-1", env.StoreRegion)
}

func TestParseEnv_LogLevel(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		wantLevel zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"info", "info", zapcore.InfoLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"DEBUG uppercase", "DEBUG", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standfxtest.SetBaseEnv(t).LogLevel(tt.envValue)

			env, err := standfx.ParseEnv()
			require.NoError(t, err)
			require.Equal(t, tt.wantLevel, env.LogLevel)
		})
	}
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		standfxtest.SetBaseEnv(t).LogLevel("loud")
		_, err := standfx.ParseEnv()
		require.ErrorContains(t, err, "failed to parse environment")
	})

	t.Run("allow invalid", func(t *testing.T) {
		standfxtest.SetBaseEnv(t).AllowInvalid("maybe")
		_, err := standfx.ParseEnv()
		require.ErrorContains(t, err, "failed to parse environment")
	})
}
