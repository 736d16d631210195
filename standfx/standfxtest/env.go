package standfxtest

import (
	"testing"
)

// Env provides a chainable builder for setting [standfx.Environment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets the env vars a test needs to build the graph without real credentials.
//
// Defaults:
//   - AWSTANDING_SERVICE_NAME: "test"
//   - AWSTANDING_OTEL_EXPORTER: "none"
//   - AWS_REGION: "us-east-1"
//   - AWS_ACCESS_KEY_ID: "test"
//   - AWS_SECRET_ACCESS_KEY: "test"
//
// Use the returned [Env] to set or override individual values:
//
//	standfxtest.SetBaseEnv(t).Paths("/app").StoreRegion("eu-central-1")
func SetBaseEnv(t testing.TB) *Env {
	t.Helper()
	t.Setenv("AWSTANDING_SERVICE_NAME", "test")
	t.Setenv("AWSTANDING_OTEL_EXPORTER", "none")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	return &Env{t: t}
}

// AWSRegion overrides AWS_REGION.
func (e *Env) AWSRegion(region string) *Env {
	e.t.Helper()
	e.t.Setenv("AWS_REGION", region)
	return e
}

// StoreRegion sets AWSTANDING_REGION.
func (e *Env) StoreRegion(region string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_REGION", region)
	return e
}

// Paths sets AWSTANDING_PATHS.
func (e *Env) Paths(paths string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_PATHS", paths)
	return e
}

// Parameters sets AWSTANDING_PARAMETERS.
func (e *Env) Parameters(pairs string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_PARAMETERS", pairs)
	return e
}

// Secrets sets AWSTANDING_SECRETS.
func (e *Env) Secrets(pairs string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_SECRETS", pairs)
	return e
}

// AllowInvalid sets AWSTANDING_ALLOW_INVALID.
func (e *Env) AllowInvalid(allow string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_ALLOW_INVALID", allow)
	return e
}

// LogLevel sets AWSTANDING_LOG_LEVEL.
func (e *Env) LogLevel(level string) *Env {
	e.t.Helper()
	e.t.Setenv("AWSTANDING_LOG_LEVEL", level)
	return e
}
