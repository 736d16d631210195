package standfx

import (
	"context"
	"time"

	"github.com/advdv/awstanding"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const awsConfigTimeout = 10 * time.Second

// NewAWSConfig loads the default AWS SDK v2 configuration.
func NewAWSConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

// awsConfigParams holds the dependencies of provideAWSConfig.
type awsConfigParams struct {
	fx.In

	Env        Environment
	Config     loadConfig
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// provideAWSConfig is an fx provider that loads AWS config with a timeout, in the region the
// parameter store lives in. It instruments the config with OpenTelemetry so every SSM and
// Secrets Manager call is traced. The TracerProvider and Propagator are explicitly injected to
// avoid global state.
func provideAWSConfig(p awsConfigParams) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(context.Background(), awsConfigTimeout)
	defer cancel()
	cfg, err := NewAWSConfig(ctx)
	if err != nil {
		return cfg, err
	}

	if r := p.Config.region.resolve(p.Env); r != "" {
		cfg.Region = r
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions,
		otelaws.WithTracerProvider(p.TracerProv),
		otelaws.WithTextMapPropagator(p.Propagator),
	)
	return cfg, nil
}

func provideParameterStore(cfg aws.Config) awstanding.ParameterStore {
	return ssm.NewFromConfig(cfg)
}

func provideSecretReader(cfg aws.Config) (awstanding.SecretReader, error) {
	return awstanding.NewAWSSecretReader(cfg)
}

func provideEnviron() awstanding.Environ {
	return awstanding.OSEnviron{}
}

// LoaderParams holds the dependencies for creating a loader.
type LoaderParams struct {
	fx.In

	Store      awstanding.ParameterStore
	Secrets    awstanding.SecretReader
	Environ    awstanding.Environ
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
}

// NewLoader creates a loader from the injected dependencies.
func NewLoader(p LoaderParams) *awstanding.Loader {
	return awstanding.NewLoader(p.Store,
		awstanding.WithSecretReader(p.Secrets),
		awstanding.WithEnviron(p.Environ),
		awstanding.WithLogger(newLoaderLogger(p.Logger)),
		awstanding.WithTracerProvider(p.TracerProv),
	)
}
