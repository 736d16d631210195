package standfx

import (
	"context"

	"github.com/advdv/awstanding"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// loadConfig holds what is loaded on start in addition to the environment configuration.
type loadConfig struct {
	region  Region
	lookup  awstanding.Lookup
	secrets awstanding.Lookup
	paths   []string
}

// Config holds configuration for the app.
type Config struct {
	loadConfig
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*Config)

// WithRegion sets the region the parameter store client targets. Defaults to [StoreRegion].
func WithRegion(r Region) Option {
	return func(c *Config) {
		c.region = r
	}
}

// WithLookup adds parameters to load on start, next to AWSTANDING_PARAMETERS. Entries given
// here win over the environment for the same key.
func WithLookup(lookup awstanding.Lookup) Option {
	return func(c *Config) {
		c.lookup = lo.Assign(c.lookup, lookup)
	}
}

// WithSecrets adds Secrets Manager secrets to load on start, next to AWSTANDING_SECRETS.
func WithSecrets(lookup awstanding.Lookup) Option {
	return func(c *Config) {
		c.secrets = lo.Assign(c.secrets, lookup)
	}
}

// WithPaths adds hierarchy prefixes to load on start, after AWSTANDING_PATHS.
func WithPaths(paths ...string) Option {
	return func(c *Config) {
		c.paths = append(c.paths, paths...)
	}
}

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *Config) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// Options returns the fx options that make up the app. Use it to embed the loader into an
// existing fx application.
func Options(opts ...Option) []fx.Option {
	cfg := Config{loadConfig: loadConfig{region: StoreRegion()}}
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 11+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv),
		fx.Provide(NewLogger),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Supply(cfg.loadConfig),
		fx.Provide(provideAWSConfig),
		fx.Provide(provideParameterStore),
		fx.Provide(provideSecretReader),
		fx.Provide(provideEnviron),
		fx.Provide(NewLoader),
		fx.Invoke(loadOnStartHook),
	}...)

	return append(baseOpts, cfg.FxOptions...)
}

// New creates an app that loads the configured parameters when started.
//
// Example:
//
//	standfx.New(
//	    standfx.WithPaths("/my-app/prod"),
//	    standfx.WithLookup(awstanding.Lookup{
//	        "/shared/db": awstanding.EnvCast("DB_PASSWORD", awstanding.JSONPath("password")),
//	    }),
//	)
func New(opts ...Option) *App {
	return &App{
		app: fx.New(Options(opts...)...),
	}
}

// Start loads everything configured. The process environment is populated when it returns.
func (a *App) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

// Stop shuts down the tracer provider.
func (a *App) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// Err returns any error encountered while building the dependency graph.
func (a *App) Err() error {
	return a.app.Err()
}

// Bootstrap starts and stops an app once. Call it at the top of main, before reading
// configuration from the environment.
func Bootstrap(ctx context.Context, opts ...Option) error {
	app := New(opts...)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	return app.Stop(ctx)
}

// loadOnStartHook registers the lifecycle hook that loads parameters, secrets and paths.
func loadOnStartHook(lc fx.Lifecycle, loader *awstanding.Loader, env Environment, cfg loadConfig, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return load(ctx, loader, env, cfg, logger)
		},
	})
}

func load(ctx context.Context, loader *awstanding.Loader, env Environment, cfg loadConfig, logger *zap.Logger) error {
	lookup := lo.Assign(env.ParameterLookup(), cfg.lookup)
	if len(lookup) > 0 {
		params, err := loader.LoadParameters(ctx, lookup, awstanding.AllowInvalid(env.AllowInvalid))
		if err != nil {
			return err
		}
		logger.Info("loaded parameters", zap.Int("count", len(params)))
	}

	secrets := lo.Assign(env.SecretLookup(), cfg.secrets)
	if len(secrets) > 0 {
		loaded, err := loader.LoadSecrets(ctx, secrets)
		if err != nil {
			return err
		}
		logger.Info("loaded secrets", zap.Int("count", len(loaded)))
	}

	paths := lo.Uniq(append(append([]string{}, env.Paths...), cfg.paths...))
	if len(paths) > 0 {
		params, err := loader.LoadPath(ctx, paths...)
		if err != nil {
			return err
		}
		logger.Info("loaded paths", zap.Strings("paths", paths), zap.Int("count", len(params)))
	}

	return nil
}
