package main

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/fd1az/pairquote/internal/apm"
	"github.com/fd1az/pairquote/internal/config"
	"github.com/fd1az/pairquote/internal/logger"
	"github.com/fd1az/pairquote/internal/metrics"
)

// setupTelemetry installs the global tracer and meter providers and returns
// a func that flushes and stops them.
func setupTelemetry(ctx context.Context, cfg config.TelemetryConfig, log logger.LoggerInterface) (func(context.Context) error, error) {
	endpoint := cfg.OTLPEndpoint
	if cfg.TraceProvider == config.TraceZipkin {
		endpoint = cfg.ZipkinEndpoint
	}

	traceProvider, err := apm.NewTraceProvider(cfg.ServiceName, apm.WithProvider(
		apm.Provider(cfg.TraceProvider),
		apm.ExporterSettings{Endpoint: endpoint, Headers: cfg.Headers()},
		log,
	))
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "tracing initialized", "provider", cfg.TraceProvider, "endpoint", endpoint)

	var (
		meterProvider metrics.MetricProvider
		promServer    *metrics.PrometheusServer
	)
	switch cfg.MetricsProvider {
	case config.MetricsPrometheus:
		meterProvider, err = metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
		)
		if err == nil {
			promServer, err = metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(cfg.PrometheusPort)))
		}
		if err == nil {
			log.Info(ctx, "prometheus metrics server started", "addr", promServer.Addr())
		}
	case config.MetricsOTLP:
		insecure := strings.HasPrefix(cfg.OTLPEndpoint, "http://")
		meterProvider, err = metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.ServiceName),
			metrics.WithProviderConfig(metrics.NewOtelCollectorConfig(cfg.OTLPEndpoint, cfg.Headers(), insecure)),
		)
	}
	if err != nil {
		err = multierr.Append(err, traceProvider.Stop())
		if meterProvider != nil {
			err = multierr.Append(err, meterProvider.Shutdown(ctx))
		}
		return nil, err
	}

	return func(ctx context.Context) error {
		err := traceProvider.Stop()
		if promServer != nil {
			err = multierr.Append(err, promServer.Shutdown(ctx))
		}
		if meterProvider != nil {
			err = multierr.Append(err, meterProvider.Shutdown(ctx))
		}
		return err
	}, nil
}
