package apm

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/fd1az/pairquote/internal/logger"
)

type Provider string

const (
	ConsoleProvider  Provider = "console"
	ZipkinProvider   Provider = "zipkin"
	OTLPGRPCProvider Provider = "otlp-grpc"
	OTLPHTTPProvider Provider = "otlp-http"
	EmptyProvider    Provider = "none"
)

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

// Exporter settings shared by all providers; each uses the fields it needs.
type ExporterSettings struct {
	Endpoint string
	Headers  map[string]string
	Writer   io.Writer // console only, defaults to stderr
}

type TracerOptions struct {
	exporter           sdktrace.SpanExporter
	tracerProviderName string
	useEmpty           bool
	syncer             bool
}

type TracerOption func(*TracerOptions) error

// WithProvider selects the span exporter. Unknown providers fall back to
// the empty provider with a warning.
func WithProvider(provider Provider, s ExporterSettings, log logger.LoggerInterface) TracerOption {
	switch provider {
	case ConsoleProvider:
		return useConsole(s)
	case ZipkinProvider:
		return useZipkin(s)
	case OTLPGRPCProvider:
		return useOTLPGRPC(s, log)
	case OTLPHTTPProvider:
		return useOTLPHTTP(s, log)
	case EmptyProvider:
		return useEmpty()
	}

	log.Warn(context.Background(), "TracerProvider not found, using EmptyProvider", "provider", provider)

	return useEmpty()
}

// WithExporter installs a ready-made exporter, exported synchronously.
func WithExporter(name string, exp sdktrace.SpanExporter) TracerOption {
	return func(option *TracerOptions) error {
		option.exporter = exp
		option.tracerProviderName = name
		option.syncer = true
		return nil
	}
}

func useEmpty() TracerOption {
	return func(option *TracerOptions) error {
		option.useEmpty = true
		option.tracerProviderName = string(EmptyProvider)
		return nil
	}
}

func useConsole(s ExporterSettings) TracerOption {
	return func(option *TracerOptions) error {
		w := s.Writer
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("console exporter: %w", err)
		}

		option.exporter = exp
		option.tracerProviderName = string(ConsoleProvider)
		return nil
	}
}

func useZipkin(s ExporterSettings) TracerOption {
	return func(option *TracerOptions) error {
		exp, err := zipkin.New(s.Endpoint)
		if err != nil {
			return fmt.Errorf("zipkin exporter: %w", err)
		}

		option.exporter = exp
		option.tracerProviderName = string(ZipkinProvider)
		return nil
	}
}

func useOTLPGRPC(s ExporterSettings, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) error {
		log.Info(context.Background(), "initializing OTLP gRPC trace exporter", "endpoint", s.Endpoint)

		exp, err := otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpointURL(s.Endpoint),
			otlptracegrpc.WithHeaders(s.Headers),
		)
		if err != nil {
			return fmt.Errorf("otlp grpc exporter: %w", err)
		}

		option.exporter = exp
		option.tracerProviderName = string(OTLPGRPCProvider)
		return nil
	}
}

func useOTLPHTTP(s ExporterSettings, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) error {
		log.Info(context.Background(), "initializing OTLP HTTP trace exporter", "endpoint", s.Endpoint)

		exp, err := otlptracehttp.New(
			context.Background(),
			otlptracehttp.WithEndpointURL(s.Endpoint),
			otlptracehttp.WithHeaders(s.Headers),
		)
		if err != nil {
			return fmt.Errorf("otlp http exporter: %w", err)
		}

		option.exporter = exp
		option.tracerProviderName = string(OTLPHTTPProvider)
		return nil
	}
}

// NewTraceProvider installs a global tracer provider built from options.
// Without options it installs nothing and returns a no-op provider.
func NewTraceProvider(serviceName string, options ...TracerOption) (TraceProvider, error) {
	opts := &TracerOptions{useEmpty: len(options) == 0}

	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}

	if opts.useEmpty {
		return NewEmptyTraceProvider(), nil
	}

	rsrc, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		))
	if err != nil {
		// schema URL conflicts with the SDK default; keep ours
		rsrc = resource.NewSchemaless(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		)
	}

	export := sdktrace.WithBatcher(opts.exporter)
	if opts.syncer {
		export = sdktrace.WithSyncer(opts.exporter)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		export,
		sdktrace.WithResource(rsrc),
	)

	// Set global trace provider
	otel.SetTracerProvider(tp)

	// Set trace propagator
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{
		tp,
	}, nil
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	return o.tp.Shutdown(ctx)
}

type emptyTraceProvider struct{}

// NewEmptyTraceProvider leaves the global no-op tracer in place.
func NewEmptyTraceProvider() TraceProvider {
	return emptyTraceProvider{}
}

func (emptyTraceProvider) Stop() error {
	return nil
}
