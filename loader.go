package awstanding

import (
	"context"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MaxBatchSize is the most names the parameter store accepts in one GetParameters request.
const MaxBatchSize = 10

const tracerName = "github.com/advdv/awstanding"

// ParameterStore is the part of the SSM API the loader uses. *ssm.Client implements it.
type ParameterStore interface {
	GetParameters(ctx context.Context,
		params *ssm.GetParametersInput,
		optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
	GetParametersByPath(ctx context.Context,
		params *ssm.GetParametersByPathInput,
		optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
	GetParameter(ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

var _ ParameterStore = (*ssm.Client)(nil)

// Loader resolves parameters and installs them into an [Environ].
type Loader struct {
	store   ParameterStore
	secrets SecretReader
	environ Environ
	logs    Logger
	tracer  trace.Tracer
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnviron sets where values are installed. Defaults to [OSEnviron].
func WithEnviron(env Environ) LoaderOption {
	return func(l *Loader) { l.environ = env }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logs Logger) LoaderOption {
	return func(l *Loader) { l.logs = logs }
}

// WithTracerProvider sets the provider for loader spans. Defaults to a no-op provider.
func WithTracerProvider(tp trace.TracerProvider) LoaderOption {
	return func(l *Loader) { l.tracer = tp.Tracer(tracerName) }
}

// WithSecretReader enables [Loader.LoadSecrets].
func WithSecretReader(r SecretReader) LoaderOption {
	return func(l *Loader) { l.secrets = r }
}

// NewLoader inits a loader on top of the given store.
func NewLoader(store ParameterStore, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:   store,
		environ: OSEnviron{},
		logs:    NewNopLogger(),
		tracer:  noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store returns the underlying parameter store.
func (l *Loader) Store() ParameterStore { return l.store }

// loadOptions holds per-call configuration for ResolveParameters and LoadParameters.
type loadOptions struct {
	allowInvalid bool
}

// LoadOption configures a single ResolveParameters or LoadParameters call.
type LoadOption func(*loadOptions)

// DisallowInvalid makes the call fail with a [*ParameterNotFoundError] when the store reports
// any requested name as invalid.
func DisallowInvalid() LoadOption {
	return AllowInvalid(false)
}

// AllowInvalid sets whether invalid names are tolerated. They are by default.
func AllowInvalid(allow bool) LoadOption {
	return func(o *loadOptions) { o.allowInvalid = allow }
}

// Resolution is the result of resolving parameters without installing them.
type Resolution struct {
	// Parameters maps each resolved parameter path to its raw value.
	Parameters map[string]string
	// Invalid holds names the store reported as nonexistent or inaccessible.
	Invalid []string
	// Env maps variable names to the values that would be installed.
	Env map[string]string
}

func newResolution() *Resolution {
	return &Resolution{Parameters: map[string]string{}, Env: map[string]string{}}
}

// ResolveParameters fetches every key of the lookup in batches of [MaxBatchSize] and computes the
// variables it maps to, without touching the environment.
func (l *Loader) ResolveParameters(ctx context.Context, lookup Lookup, opts ...LoadOption) (res *Resolution, err error) {
	o := loadOptions{allowInvalid: true}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := l.tracer.Start(ctx, "awstanding.ResolveParameters",
		trace.WithAttributes(attribute.Int("awstanding.lookup.size", len(lookup))))
	defer func() { endSpan(span, err) }()

	keys := lo.Keys(lookup)
	slices.Sort(keys)

	var unmatched []string
	res = newResolution()
	for _, batch := range lo.Chunk(keys, MaxBatchSize) {
		out, err := l.store.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          batch,
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get parameters %v", batch)
		}

		for _, p := range out.Parameters {
			key, ok := lookupKey(lookup, p)
			if !ok {
				unmatched = append(unmatched, aws.ToString(p.Name))
				continue
			}
			res.Parameters[key] = aws.ToString(p.Value)
		}
		res.Invalid = append(res.Invalid, out.InvalidParameters...)
	}

	if len(unmatched) > 0 {
		l.logs.LogUnmatchedParameters(unmatched)
	}

	if len(res.Invalid) > 0 {
		if !o.allowInvalid {
			return nil, NewParameterNotFoundError(res.Invalid...)
		}
		l.logs.LogInvalidParameters(res.Invalid)
	}

	resolved := lo.Keys(res.Parameters)
	slices.Sort(resolved)
	for _, key := range resolved {
		target := lookup[key]
		v, err := target.value(res.Parameters[key])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to cast parameter %q", key)
		}
		res.Env[target.Name] = v
	}

	return res, nil
}

// LoadParameters resolves the lookup and installs each resolved parameter under its target name.
// It returns the resolved path to raw value mapping. When invalid names are disallowed and any is
// reported, nothing is installed.
func (l *Loader) LoadParameters(ctx context.Context, lookup Lookup, opts ...LoadOption) (map[string]string, error) {
	res, err := l.ResolveParameters(ctx, lookup, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.install(res.Env); err != nil {
		return res.Parameters, err
	}
	return res.Parameters, nil
}

// ResolvePath fetches every parameter below the given prefixes, recursively, and computes the
// variables they map to using [EnvName]. When several paths map to the same variable the one the
// store returned last wins. Nothing is installed.
func (l *Loader) ResolvePath(ctx context.Context, paths ...string) (res *Resolution, err error) {
	ctx, span := l.tracer.Start(ctx, "awstanding.ResolvePath",
		trace.WithAttributes(attribute.StringSlice("awstanding.paths", paths)))
	defer func() { endSpan(span, err) }()

	res = newResolution()
	for _, path := range paths {
		params, err := l.fetchPath(ctx, path)
		if err != nil {
			return nil, err
		}
		res.Parameters = lo.Assign(res.Parameters, pathValues(params))
		res.Env = lo.Assign(res.Env, envVars(params))
	}
	return res, nil
}

// LoadPath fetches every parameter below each prefix and installs it under [EnvName] of its full
// path. Each prefix is installed as soon as all of its pages are fetched. It returns the union of
// path to value across all prefixes.
func (l *Loader) LoadPath(ctx context.Context, paths ...string) (all map[string]string, err error) {
	ctx, span := l.tracer.Start(ctx, "awstanding.LoadPath",
		trace.WithAttributes(attribute.StringSlice("awstanding.paths", paths)))
	defer func() { endSpan(span, err) }()

	all = map[string]string{}
	for _, path := range paths {
		params, err := l.fetchPath(ctx, path)
		if err != nil {
			return all, err
		}
		all = lo.Assign(all, pathValues(params))

		if err := l.install(envVars(params)); err != nil {
			return all, err
		}
	}
	return all, nil
}

// fetchPath follows continuation tokens until the store reports no more pages. Parameters are
// returned in the order the store sent them.
func (l *Loader) fetchPath(ctx context.Context, path string) ([]types.Parameter, error) {
	pages := ssm.NewGetParametersByPathPaginator(l.store, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	var params []types.Parameter
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get parameters by path %q", path)
		}
		params = append(params, page.Parameters...)
	}
	return params, nil
}

func (l *Loader) install(vars map[string]string) error {
	keys, err := Install(l.environ, vars)
	if len(keys) > 0 {
		l.logs.LogInstalled(keys)
	}
	return err
}

var envNameReplacer = strings.NewReplacer("/", "_", "-", "_")

// EnvName derives a variable name from a parameter path: surrounding slashes are dropped, the
// remaining slashes and hyphens become underscores and the result is upper-cased.
// "/app/db-host" becomes "APP_DB_HOST".
func EnvName(path string) string {
	return strings.ToUpper(envNameReplacer.Replace(strings.Trim(path, "/")))
}

func pathValues(params []types.Parameter) map[string]string {
	return lo.SliceToMap(params, func(p types.Parameter) (string, string) {
		return aws.ToString(p.Name), aws.ToString(p.Value)
	})
}

// envVars keys each parameter by its [EnvName]. Later parameters overwrite earlier ones that map
// to the same name.
func envVars(params []types.Parameter) map[string]string {
	return lo.SliceToMap(params, func(p types.Parameter) (string, string) {
		return EnvName(aws.ToString(p.Name)), aws.ToString(p.Value)
	})
}

// lookupKey maps a returned parameter back to the lookup key that requested it. Keys may carry
// a version or label selector, or be an ARN, while the store reports the bare name.
func lookupKey(lookup Lookup, p types.Parameter) (string, bool) {
	name := aws.ToString(p.Name)
	candidates := []string{name}
	if sel := aws.ToString(p.Selector); sel != "" {
		candidates = append(candidates, name+sel)
	}
	if arn := aws.ToString(p.ARN); arn != "" {
		candidates = append(candidates, arn)
	}
	for _, key := range candidates {
		if _, ok := lookup[key]; ok {
			return key, true
		}
	}
	return "", false
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
