package standfx

import (
	"context"
	"time"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

// Values accepted by AWSTANDING_OTEL_EXPORTER.
const (
	ExporterNone    = "none"
	ExporterStdout  = "stdout"
	ExporterXrayUDP = "xrayudp"
)

const tracingInitTimeout = 5 * time.Second

// NewTracerProvider returns the provider the loader records its spans on. With [ExporterNone]
// nothing is recorded. Any other exporter gets an SDK provider that is shut down when the app
// stops.
func NewTracerProvider(lc fx.Lifecycle, env Environment) (trace.TracerProvider, error) {
	if env.OtelExporter == ExporterNone {
		return noop.NewTracerProvider(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), tracingInitTimeout)
	defer cancel()

	exporter, err := newExporter(ctx, env.OtelExporter)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, env.OtelExporter, env.ServiceName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to detect trace resource")
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	}
	if env.OtelExporter == ExporterXrayUDP {
		opts = append(opts, sdktrace.WithIDGenerator(xray.NewIDGenerator()))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	lc.Append(fx.StopHook(tp.Shutdown))

	return tp, nil
}

// NewPropagator returns the X-Ray propagator when spans go to X-Ray, and W3C trace context with
// baggage otherwise.
func NewPropagator(env Environment) propagation.TextMapPropagator {
	if env.OtelExporter == ExporterXrayUDP {
		return xray.Propagator{}
	}
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}

func newExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch kind {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterXrayUDP:
		return xrayudp.NewSpanExporter(ctx)
	default:
		return nil, errors.Newf("unsupported AWSTANDING_OTEL_EXPORTER: %q (supported: %s, %s, %s)",
			kind, ExporterNone, ExporterStdout, ExporterXrayUDP)
	}
}

// newResource describes the process. On Lambda the detector fills in function attributes.
func newResource(ctx context.Context, kind, serviceName string) (*resource.Resource, error) {
	if kind == ExporterXrayUDP {
		return lambda.NewResourceDetector().Detect(ctx)
	}
	return resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)), nil
}
