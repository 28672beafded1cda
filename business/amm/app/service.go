package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/apm"
	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/cache"
	"github.com/fd1az/pairquote/internal/logger"
)

// pairKey identifies a pair address independently of token order.
type pairKey struct {
	factory      common.Address
	initCodeHash common.Hash
	token0       common.Address
	token1       common.Address
}

// QuoteService resolves tokens, derives pair addresses and prices swaps for
// the deployments in its Book. All methods are safe for concurrent use.
type QuoteService struct {
	book     *Book
	tokens   *asset.Registry
	reporter Reporter
	logger   logger.LoggerInterface

	addresses  *cache.Cache[pairKey, common.Address]
	addressTTL time.Duration

	tracer  apm.Tracer
	metrics *quoteMetrics
}

type serviceOptions struct {
	addressTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// Option configures a QuoteService.
type Option func(*serviceOptions)

// WithAddressCache sets the address cache TTL, sweep interval and size.
// A zero ttl caches forever.
func WithAddressCache(ttl, cleanupInterval time.Duration, maxEntries int) Option {
	return func(o *serviceOptions) {
		o.addressTTL = ttl
		o.cleanupInterval = cleanupInterval
		o.maxEntries = maxEntries
	}
}

// NewQuoteService creates the service. reporter may be nil.
func NewQuoteService(book *Book, tokens *asset.Registry, reporter Reporter, log logger.LoggerInterface, opts ...Option) (*QuoteService, error) {
	o := serviceOptions{addressTTL: 10 * time.Minute, cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	m, err := newQuoteMetrics()
	if err != nil {
		return nil, fmt.Errorf("quote metrics: %w", err)
	}

	return &QuoteService{
		book:       book,
		tokens:     tokens,
		reporter:   reporter,
		logger:     log,
		addresses:  cache.New[pairKey, common.Address](o.cleanupInterval, cache.WithMaxEntries(o.maxEntries)),
		addressTTL: o.addressTTL,
		tracer:     apm.NewTracer(tracerName),
		metrics:    m,
	}, nil
}

// Book returns the deployments the service quotes against.
func (s *QuoteService) Book() *Book { return s.book }

// Close stops the address cache sweep.
func (s *QuoteService) Close() {
	s.addresses.Close()
}

// ResolveToken finds a token on network by symbol or address.
func (s *QuoteService) ResolveToken(ctx context.Context, network, ref string) (*asset.Token, error) {
	d, err := s.book.Deployment(network)
	if err != nil {
		return nil, err
	}
	t, err := s.tokens.Resolve(d.ChainID, ref)
	if err != nil {
		return nil, wrap(err, fmt.Sprintf("%s on %s", ref, d.Name))
	}
	return t, nil
}

// ParseAmount resolves ref and parses value as a decimal in whole tokens.
func (s *QuoteService) ParseAmount(ctx context.Context, network, ref, value string) (asset.Amount, error) {
	t, err := s.ResolveToken(ctx, network, ref)
	if err != nil {
		return asset.Amount{}, err
	}
	a, err := asset.ParseString(t, value)
	if err != nil {
		return asset.Amount{}, wrap(err, fmt.Sprintf("%s %s", value, t))
	}
	return a, nil
}

// PairAddress derives the pair address of tokenA and tokenB on network.
// Results are cached per (factory, init code hash, token0, token1).
func (s *QuoteService) PairAddress(ctx context.Context, network string, tokenA, tokenB *asset.Token) (common.Address, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "amm.pair_address")
	defer span.End()

	d, err := s.book.Deployment(network)
	if err != nil {
		return common.Address{}, s.fail(ctx, span, "pair_address", err)
	}
	if tokenA == nil || tokenB == nil {
		return common.Address{}, s.fail(ctx, span, "pair_address", asset.ErrNilToken)
	}
	token0, token1, err := asset.SortTokens(tokenA, tokenB)
	if err != nil {
		return common.Address{}, s.fail(ctx, span, "pair_address", err)
	}
	span.SetAttributes(
		attribute.String("network", d.Name),
		attribute.String("token0", token0.Address().Hex()),
		attribute.String("token1", token1.Address().Hex()),
	)

	key := pairKey{factory: d.Factory, initCodeHash: d.InitCodeHash, token0: token0.Address(), token1: token1.Address()}
	if addr, found := s.addresses.Get(ctx, key); found {
		s.metrics.cacheHits.Add(ctx, 1)
		span.AddEvent("cache_hit")
		return addr, nil
	}
	s.metrics.cacheMisses.Add(ctx, 1)

	addr, err := d.PairAddress(token0, token1)
	if err != nil {
		return common.Address{}, s.fail(ctx, span, "pair_address", err)
	}
	s.addresses.Set(ctx, key, addr, s.addressTTL)

	span.SetAttributes(attribute.String("pair", addr.Hex()))
	return addr, nil
}

// Snapshot builds a pair from its reserves and reports it.
func (s *QuoteService) Snapshot(ctx context.Context, req SnapshotRequest) (*domain.Pair, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "amm.snapshot")
	defer span.End()

	pair, err := s.snapshot(req)
	if err != nil {
		return nil, s.fail(ctx, span, "snapshot", err)
	}
	span.SetAttributes(attribute.String("pair", pair.Address().Hex()))

	if s.reporter != nil {
		if err := s.reporter.ReportPair(ctx, pair); err != nil {
			return nil, s.fail(ctx, span, "snapshot", apperror.Internal(apperror.CodeInternalError, "report pair", err))
		}
	}
	return pair, nil
}

func (s *QuoteService) snapshot(req SnapshotRequest) (*domain.Pair, error) {
	d, err := s.book.Deployment(req.Network)
	if err != nil {
		return nil, err
	}
	return domain.NewPair(d, req.ReserveA, req.ReserveB)
}

// Quote prices a single swap. ExactInput fixes what goes in, ExactOutput
// what comes out; the other side is computed with the pair's fee.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "amm.quote")
	defer span.End()
	span.SetAttributes(attribute.String("trade_type", req.TradeType.String()))

	if req.Amount.Token() == nil {
		return nil, s.fail(ctx, span, "quote", asset.ErrNilToken)
	}

	pair, err := s.snapshot(req.SnapshotRequest)
	if err != nil {
		return nil, s.fail(ctx, span, "quote", err)
	}
	network := pair.Deployment().Name
	span.SetAttributes(attribute.String("network", network), attribute.String("pair", pair.Address().Hex()))

	var (
		in, out asset.Amount
		after   *domain.Pair
	)
	switch req.TradeType {
	case domain.ExactInput:
		in = req.Amount
		out, after, err = pair.GetOutputAmount(req.Amount)
	case domain.ExactOutput:
		out = req.Amount
		in, after, err = pair.GetInputAmount(req.Amount)
	default:
		err = apperror.Validation(apperror.CodeInvalidInput, "trade type "+req.TradeType.String())
	}
	if err != nil {
		return nil, s.fail(ctx, span, "quote", err)
	}

	mid, err := pair.PriceOf(in.Token())
	if err != nil {
		return nil, s.fail(ctx, span, "quote", err)
	}

	q := &Quote{
		TradeType:      req.TradeType,
		Network:        network,
		Pair:           pair,
		PairAfter:      after,
		AmountIn:       in,
		AmountOut:      out,
		MidPrice:       mid,
		ExecutionPrice: asset.PriceFromAmounts(in, out),
		PriceImpact:    priceImpact(mid, in, out),
	}

	s.record(ctx, req.TradeType, network, q.PriceImpact.BasisPoints().Int64())
	span.SetAttributes(
		attribute.String("amount_in", in.Raw().String()),
		attribute.String("amount_out", out.Raw().String()),
	)
	s.logger.Debug(ctx, "quote computed",
		"network", network,
		"trade_type", req.TradeType.String(),
		"pair", pair.Address().Hex(),
		"amount_in", in.String(),
		"amount_out", out.String(),
		"price_impact", q.PriceImpact.String(),
	)

	if s.reporter != nil {
		if err := s.reporter.ReportQuote(ctx, q); err != nil {
			return nil, s.fail(ctx, span, "quote", apperror.Internal(apperror.CodeInternalError, "report quote", err))
		}
	}
	return q, nil
}

// QuotePath swaps amountIn through pairs in order. Each hop must trade the
// previous hop's output token. A pair that appears twice is swapped
// against its post-swap state the second time. No routing is done.
func (s *QuoteService) QuotePath(ctx context.Context, pairs []*domain.Pair, amountIn asset.Amount) (*PathQuote, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "amm.quote_path")
	defer span.End()
	span.SetAttributes(attribute.Int("hops", len(pairs)))

	if len(pairs) == 0 {
		return nil, s.fail(ctx, span, "quote_path", apperror.Validation(apperror.CodeInvalidPath, "empty path"))
	}
	if amountIn.Token() == nil {
		return nil, s.fail(ctx, span, "quote_path", asset.ErrNilToken)
	}

	latest := make(map[common.Address]*domain.Pair, len(pairs))
	hops := make([]Hop, 0, len(pairs))
	current := amountIn
	var mid asset.Price

	for i, original := range pairs {
		if original == nil {
			return nil, s.fail(ctx, span, "quote_path", apperror.Validation(apperror.CodeInvalidPath,
				fmt.Sprintf("hop %d: nil pair", i)))
		}
		if !original.InvolvesToken(current.Token()) {
			return nil, s.fail(ctx, span, "quote_path", apperror.Validation(apperror.CodeInvalidPath,
				fmt.Sprintf("hop %d: %s does not trade %s", i, original, current.Token())))
		}

		hopMid, err := original.PriceOf(current.Token())
		if err != nil {
			return nil, s.fail(ctx, span, "quote_path", err)
		}
		if i == 0 {
			mid = hopMid
		} else if mid, err = mid.Multiply(hopMid); err != nil {
			return nil, s.fail(ctx, span, "quote_path", err)
		}

		pair := original
		if p, ok := latest[original.Address()]; ok {
			pair = p
		}
		out, after, err := pair.GetOutputAmount(current)
		if err != nil {
			return nil, s.fail(ctx, span, "quote_path", fmt.Errorf("hop %d: %w", i, err))
		}
		latest[pair.Address()] = after

		hops = append(hops, Hop{Pair: pair, PairAfter: after, AmountIn: current, AmountOut: out})
		current = out
	}

	pq := &PathQuote{
		Hops:           hops,
		AmountIn:       amountIn,
		AmountOut:      current,
		MidPrice:       mid,
		ExecutionPrice: asset.PriceFromAmounts(amountIn, current),
		PriceImpact:    priceImpact(mid, amountIn, current),
	}

	network := pairs[0].Deployment().Name
	s.record(ctx, domain.ExactInput, network, pq.PriceImpact.BasisPoints().Int64())
	s.logger.Debug(ctx, "path quote computed",
		"network", network,
		"hops", len(hops),
		"amount_in", amountIn.String(),
		"amount_out", current.String(),
	)
	return pq, nil
}

func (s *QuoteService) record(ctx context.Context, tt domain.TradeType, network string, impactBps int64) {
	s.metrics.quotes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trade_type", tt.String()),
		attribute.String("network", network),
	))
	s.metrics.priceImpactBps.Record(ctx, impactBps, metric.WithAttributes(attribute.String("network", network)))
}

// fail codes err, records it on the span and metrics and returns it.
func (s *QuoteService) fail(ctx context.Context, span apm.Span, op string, err error) error {
	appErr := errorCodes.Wrap(err, apperror.CodeInternalError, op)
	appErr.WithTraceID(apm.TraceIDFromContext(ctx))

	span.NoticeError(appErr)
	s.metrics.quoteErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", string(appErr.Code)),
		attribute.String("operation", op),
	))
	s.logger.Warn(ctx, "amm request failed", "operation", op, "code", appErr.Code, "error", err)
	return appErr
}
