package awstanding

import (
	"context"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SecretReader abstracts secret retrieval for testability and flexibility.
type SecretReader interface {
	GetSecretString(ctx context.Context, secretID string) (string, error)
}

// AWSSecretReader implements SecretReader using AWS Secrets Manager caching client.
type AWSSecretReader struct {
	cache *secretcache.Cache
}

// NewAWSSecretReader creates a new AWSSecretReader using the provided AWS config.
func NewAWSSecretReader(cfg aws.Config) (*AWSSecretReader, error) {
	client := secretsmanager.NewFromConfig(cfg)
	cache, err := secretcache.New(
		func(c *secretcache.Cache) {
			c.Client = client
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create secret cache")
	}
	return &AWSSecretReader{cache: cache}, nil
}

// GetSecretString retrieves a secret value from AWS Secrets Manager with caching.
func (r *AWSSecretReader) GetSecretString(ctx context.Context, secretID string) (string, error) {
	secret, err := r.cache.GetSecretStringWithContext(ctx, secretID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get secret %q", secretID)
	}
	return secret, nil
}

// LoadSecrets reads every secret ID in the lookup and installs it under its target name, applying
// the cast first. Use [JSONPath] to pick a field out of a JSON secret:
//
//	loader.LoadSecrets(ctx, awstanding.Lookup{
//	    "prod/db": awstanding.EnvCast("DB_PASSWORD", awstanding.JSONPath("password")),
//	})
//
// It returns secret ID to raw secret string. Any failure aborts before anything is installed.
func (l *Loader) LoadSecrets(ctx context.Context, lookup Lookup) (secrets map[string]string, err error) {
	if l.secrets == nil {
		return nil, ErrNoSecretReader
	}

	ctx, span := l.tracer.Start(ctx, "awstanding.LoadSecrets",
		trace.WithAttributes(attribute.Int("awstanding.lookup.size", len(lookup))))
	defer func() { endSpan(span, err) }()

	ids := lo.Keys(lookup)
	slices.Sort(ids)

	secrets = make(map[string]string, len(ids))
	vars := make(map[string]string, len(ids))
	for _, id := range ids {
		raw, err := l.secrets.GetSecretString(ctx, id)
		if err != nil {
			return nil, err
		}

		target := lookup[id]
		v, err := target.value(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to cast secret %q", id)
		}
		secrets[id] = raw
		vars[target.Name] = v
	}

	if err := l.install(vars); err != nil {
		return secrets, err
	}
	return secrets, nil
}
