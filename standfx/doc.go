// Package standfx bootstraps an [awstanding.Loader] from environment variables.
//
// # Overview
//
// standfx handles the boilerplate around the loader: environment parsing, structured logging,
// OpenTelemetry tracing of the AWS SDK calls, and AWS client construction. A program that reads
// its configuration from the environment only needs one call at the top of main:
//
//	func main() {
//	    if err := standfx.Bootstrap(context.Background()); err != nil {
//	        log.Fatal(err)
//	    }
//	    // os.Getenv now sees the loaded parameters
//	}
//
// # Environment Configuration
//
//	| Variable                  | Default    | Description                                          |
//	|---------------------------|------------|------------------------------------------------------|
//	| AWSTANDING_SERVICE_NAME   | awstanding | Service name for tracing                             |
//	| AWSTANDING_LOG_LEVEL      | info       | Log level (debug, info, warn, error)                 |
//	| AWSTANDING_OTEL_EXPORTER  | none       | Trace exporter: "none", "stdout" or "xrayudp"        |
//	| AWS_REGION                | -          | AWS region                                           |
//	| AWSTANDING_REGION         | -          | Region of the parameter store, if not AWS_REGION     |
//	| AWSTANDING_PATHS          | -          | Comma separated prefixes to load recursively         |
//	| AWSTANDING_PARAMETERS     | -          | Comma separated "path=ENV_NAME" pairs                |
//	| AWSTANDING_SECRETS        | -          | Comma separated "secret-id=ENV_NAME" pairs           |
//	| AWSTANDING_ALLOW_INVALID  | true       | Tolerate parameters the store reports as invalid     |
//
// Parameters are loaded first, then secrets, then paths. Code can add to each with
// [WithLookup], [WithSecrets] and [WithPaths]; lookups given in code can carry casts.
//
// # Dependency Injection
//
// [Options] returns the fx options so the loader can be part of a larger fx application, and
// [WithFx] adds options to the graph. Tests replace the parameter store or the environment sink
// with fx.Decorate:
//
//	standfx.WithFx(fx.Decorate(func(awstanding.Environ) awstanding.Environ {
//	    return awstanding.MapEnviron{}
//	}))
package standfx
