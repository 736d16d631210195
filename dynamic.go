package awstanding

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cockroachdb/errors"
)

// DynamicParameter is a handle on a single parameter that never caches: every accessor fetches
// the current value from the store.
type DynamicParameter struct {
	store       ParameterStore
	name        string
	failOnError bool
	logs        Logger
}

// DynamicOption configures a DynamicParameter.
type DynamicOption func(*DynamicParameter)

// SuppressErrors makes resolve failures yield an empty string instead of an error. The
// suppressed error is still logged.
func SuppressErrors() DynamicOption {
	return func(p *DynamicParameter) { p.failOnError = false }
}

// WithDynamicLogger sets the logger that receives suppressed errors.
func WithDynamicLogger(logs Logger) DynamicOption {
	return func(p *DynamicParameter) { p.logs = logs }
}

// NewDynamicParameter creates a handle on the named parameter. Resolve errors propagate unless
// [SuppressErrors] is given.
func NewDynamicParameter(store ParameterStore, name string, opts ...DynamicOption) *DynamicParameter {
	p := &DynamicParameter{store: store, name: name, failOnError: true, logs: NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dynamic creates a handle on the named parameter that shares the loader's store and logger.
func (l *Loader) Dynamic(name string, opts ...DynamicOption) *DynamicParameter {
	return NewDynamicParameter(l.store, name, append([]DynamicOption{WithDynamicLogger(l.logs)}, opts...)...)
}

// Name returns the parameter name the handle was created with.
func (p *DynamicParameter) Name() string { return p.name }

// Resolve fetches the decrypted value.
func (p *DynamicParameter) Resolve(ctx context.Context) (string, error) {
	out, err := p.store.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if !p.failOnError {
			p.logs.LogSuppressedError(p.name, err)
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to get parameter %q", p.name)
	}
	if out.Parameter == nil {
		return "", nil
	}
	return aws.ToString(out.Parameter.Value), nil
}

// Equal reports whether the current value equals s.
func (p *DynamicParameter) Equal(ctx context.Context, s string) (bool, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return v == s, nil
}

// Len returns the number of characters (runes) in the current value.
func (p *DynamicParameter) Len(ctx context.Context) (int, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(v), nil
}

// Append returns the current value followed by s.
func (p *DynamicParameter) Append(ctx context.Context, s string) (string, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return v + s, nil
}

// Prepend returns s followed by the current value.
func (p *DynamicParameter) Prepend(ctx context.Context, s string) (string, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return s + v, nil
}

// String resolves the current value with a background context. It returns an empty string if
// that fails; use [DynamicParameter.Resolve] to observe the error.
func (p *DynamicParameter) String() string {
	v, _ := p.Resolve(context.Background())
	return v
}

// GoString is the quoted form of String, for %#v.
func (p *DynamicParameter) GoString() string {
	return strconv.Quote(p.String())
}
