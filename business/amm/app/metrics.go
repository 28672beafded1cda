package app

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName  = "github.com/fd1az/pairquote/business/amm/app"
	tracerName = meterName
)

// quoteMetrics holds OTEL metric instruments.
type quoteMetrics struct {
	quotes         metric.Int64Counter
	quoteErrors    metric.Int64Counter
	priceImpactBps metric.Int64Histogram
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
}

func newQuoteMetrics() (*quoteMetrics, error) {
	meter := otel.Meter(meterName)
	m := &quoteMetrics{}
	var err error

	m.quotes, err = meter.Int64Counter(
		"pairquote_quotes_total",
		metric.WithDescription("Quotes computed, by trade type and network"),
		metric.WithUnit("{quote}"),
	)
	if err != nil {
		return nil, err
	}

	m.quoteErrors, err = meter.Int64Counter(
		"pairquote_quote_errors_total",
		metric.WithDescription("Failed quote, snapshot and address requests, by error code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.priceImpactBps, err = meter.Int64Histogram(
		"pairquote_price_impact_bps",
		metric.WithDescription("Price impact of computed quotes"),
		metric.WithUnit("{bp}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 100, 300, 1000, 3000, 10000),
	)
	if err != nil {
		return nil, err
	}

	m.cacheHits, err = meter.Int64Counter(
		"pairquote_address_cache_hits_total",
		metric.WithDescription("Pair address cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	m.cacheMisses, err = meter.Int64Counter(
		"pairquote_address_cache_misses_total",
		metric.WithDescription("Pair address cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}
