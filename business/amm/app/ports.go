// Package app contains the quoting service and its ports.
package app

import (
	"context"

	"github.com/fd1az/pairquote/business/amm/domain"
)

//go:generate mockgen -source=ports.go -destination=mock/reporter.go -package=mock

// Reporter receives the results the service computes.
type Reporter interface {
	// ReportPair is called with every pair snapshot built on request.
	ReportPair(ctx context.Context, pair *domain.Pair) error

	// ReportQuote is called with every successful single-pair quote.
	ReportQuote(ctx context.Context, quote *Quote) error
}
