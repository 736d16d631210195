// Package awstanding loads configuration from AWS Systems Manager Parameter Store (and Secrets
// Manager) into the process environment.
//
// # Overview
//
// Applications that read their configuration from environment variables can be pointed at the
// parameter store without changing how they read it: resolve the parameters once at start-up,
// install them as environment variables, and carry on. A minimal example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	loader := awstanding.NewLoader(ssm.NewFromConfig(cfg))
//
//	_, err := loader.LoadParameters(ctx, awstanding.Lookup{
//	    "/my-app/prod/db-host": awstanding.Env("DB_HOST"),
//	})
//
//	host := os.Getenv("DB_HOST")
//
// # Lookups
//
// A [Lookup] maps a parameter path to a [Target]: the environment variable the value is
// installed under and an optional [CastFunc] applied to the raw value first:
//
//	awstanding.Lookup{
//	    "/my-app/prod/db-host":  awstanding.Env("DB_HOST"),
//	    "/my-app/prod/db-creds": awstanding.EnvCast("DB_PASSWORD", awstanding.JSONPath("password")),
//	    "/my-app/prod/tls-cert": awstanding.EnvCast("TLS_CERT", awstanding.Base64),
//	}
//
// [Loader.LoadParameters] requests the keys in batches of [MaxBatchSize], the limit of the
// GetParameters API. Names the store reports as invalid are skipped and logged, unless
// [DisallowInvalid] is passed, in which case the call fails with a [*ParameterNotFoundError]
// and nothing is installed.
//
// # Paths
//
// [Loader.LoadPath] installs everything below one or more hierarchy prefixes. The variable name
// is derived from the full parameter path with [EnvName]:
//
//	/my-app/prod/db-host  ->  MY_APP_PROD_DB_HOST
//
// # Resolving Without Installing
//
// Writing to the process environment is global state. [Loader.ResolveParameters] and
// [Loader.ResolvePath] return a [Resolution] holding the variables that would be installed, and
// leave it to the caller to use them or to call [Install]. Alternatively configure the loader
// with a [MapEnviron] via [WithEnviron].
//
// # Dynamic Parameters
//
// A [DynamicParameter] never caches: every accessor fetches the current value, so rotated
// values are picked up without a restart.
//
//	featureFlag := loader.Dynamic("/my-app/prod/feature-x")
//	on, err := featureFlag.Equal(ctx, "on")
//
// Resolve errors propagate by default. With [SuppressErrors] a failed fetch yields an empty string.
//
// # Secrets
//
// [Loader.LoadSecrets] does the same for AWS Secrets Manager secret IDs, through a
// [SecretReader] configured with [WithSecretReader]. [NewAWSSecretReader] provides one backed by
// the Secrets Manager caching client.
//
// # Bootstrapping
//
// The standfx sub-package wires a loader from environment variables with fx, zap and
// OpenTelemetry, for use at the top of main.
package awstanding
