// Package standfxtest provides test helpers for standfx applications.
//
// It constructs the identical DI graph as [standfx.New] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	standfxtest.SetBaseEnv(t)
//	app := standfxtest.New(t, standfx.WithPaths("/app"))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package standfxtest

import (
	"testing"

	"github.com/advdv/awstanding/standfx"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing standfx applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [standfx.New].
func New(t testing.TB, opts ...standfx.Option) *App {
	return &App{App: fxtest.New(t, standfx.Options(opts...)...)}
}
