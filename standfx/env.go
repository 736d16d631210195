package standfx

import (
	"github.com/advdv/awstanding"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment holds the variables that configure the bootstrap.
type Environment struct {
	ServiceName  string        `env:"AWSTANDING_SERVICE_NAME" envDefault:"awstanding"`
	LogLevel     zapcore.Level `env:"AWSTANDING_LOG_LEVEL" envDefault:"info"`
	OtelExporter string        `env:"AWSTANDING_OTEL_EXPORTER" envDefault:"none"`
	AWSRegion    string        `env:"AWS_REGION"`
	// StoreRegion is the region the parameter store lives in, when it differs from AWS_REGION.
	StoreRegion string `env:"AWSTANDING_REGION"`
	// Paths are hierarchy prefixes loaded with LoadPath.
	Paths []string `env:"AWSTANDING_PATHS" envSeparator:","`
	// Parameters are "path=ENV_NAME" pairs loaded with LoadParameters. The "=" separator keeps
	// version selectors like "/app/key:3" intact.
	Parameters   map[string]string `env:"AWSTANDING_PARAMETERS" envSeparator:"," envKeyValSeparator:"="`
	Secrets      map[string]string `env:"AWSTANDING_SECRETS" envSeparator:"," envKeyValSeparator:"="`
	AllowInvalid bool              `env:"AWSTANDING_ALLOW_INVALID" envDefault:"true"`
}

// ParameterLookup returns the configured parameters as a lookup without casts.
func (e Environment) ParameterLookup() awstanding.Lookup {
	return awstanding.Names(e.Parameters)
}

// SecretLookup returns the configured secrets as a lookup without casts.
func (e Environment) SecretLookup() awstanding.Lookup {
	return awstanding.Names(e.Secrets)
}

// ParseEnv parses environment variables into an Environment.
func ParseEnv() (e Environment, err error) {
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}
	return e, nil
}
