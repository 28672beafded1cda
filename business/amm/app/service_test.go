package app_test

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/fd1az/pairquote/business/amm/app"
	"github.com/fd1az/pairquote/business/amm/app/mock"
	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/config"
	"github.com/fd1az/pairquote/internal/logger"
)

var (
	musdt = asset.MustNewToken(asset.ChainIDTestnet, "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", 18, "MUSDT", "Mock Tether")
	musdc = asset.MustNewToken(asset.ChainIDTestnet, "0x270E355e75F60Fb015c94561858cb719acafb90C", 18, "MUSDC", "Mock USD Coin")
)

const testnetPair = "0xF395A49f98Ef550BAB63eeed5ce55B19Cae4E91F"

func amt(t *asset.Token, raw int64) asset.Amount {
	return asset.NewAmountFromInt64(t, raw)
}

func newService(t *testing.T, reporter app.Reporter) (*app.QuoteService, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	book, err := app.NewBook("testnet", domain.TestnetDeployment, domain.MainnetDeployment)
	require.NoError(t, err)

	registry := asset.DefaultRegistry()
	registry.MustRegister(musdt)
	registry.MustRegister(musdc)

	svc, err := app.NewQuoteService(book, registry, reporter,
		logger.New(io.Discard, logger.LevelError, "pairquote-test", nil))
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return svc, reader
}

// counter sums every data point of the named Int64 sum.
func counter(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == name {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func quoteReq(tt domain.TradeType, amount asset.Amount) app.QuoteRequest {
	return app.QuoteRequest{
		SnapshotRequest: app.SnapshotRequest{
			Network:  "testnet",
			ReserveA: amt(musdt, 101),
			ReserveB: amt(musdc, 100),
		},
		TradeType: tt,
		Amount:    amount,
	}
}

func TestQuoteService_QuoteExactInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockReporter(ctrl)
	svc, reader := newService(t, reporter)

	var reported *app.Quote
	reporter.EXPECT().
		ReportQuote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *app.Quote) error {
			reported = q
			return nil
		})

	q, err := svc.Quote(context.Background(), quoteReq(domain.ExactInput, amt(musdc, 10)))
	require.NoError(t, err)

	assert.Same(t, q, reported)
	assert.Equal(t, "testnet", q.Network)
	assert.Equal(t, testnetPair, q.Pair.Address().Hex())
	assert.Equal(t, big.NewInt(10), q.AmountIn.Raw())
	assert.True(t, q.AmountOut.Token().Equals(musdt))
	assert.Equal(t, big.NewInt(9), q.AmountOut.Raw())
	assert.Equal(t, big.NewInt(110), q.PairAfter.Reserve0().Raw())
	assert.Equal(t, big.NewInt(92), q.PairAfter.Reserve1().Raw())

	assert.True(t, q.MidPrice.Equals(asset.NewPrice(musdc, musdt, big.NewInt(100), big.NewInt(101))))
	assert.True(t, q.ExecutionPrice.Equals(asset.NewPrice(musdc, musdt, big.NewInt(10), big.NewInt(9))))
	assert.Equal(t, "10.89%", q.PriceImpact.String())
	assert.Equal(t, int64(1089), q.PriceImpact.BasisPoints().Int64())

	assert.Equal(t, int64(1), counter(t, reader, "pairquote_quotes_total"))
}

func TestQuoteService_QuoteExactOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockReporter(ctrl)
	svc, _ := newService(t, reporter)

	reporter.EXPECT().ReportQuote(gomock.Any(), gomock.Any()).Return(nil)

	q, err := svc.Quote(context.Background(), quoteReq(domain.ExactOutput, amt(musdt, 9)))
	require.NoError(t, err)

	assert.Equal(t, domain.ExactOutput, q.TradeType)
	assert.True(t, q.AmountIn.Token().Equals(musdc))
	assert.Equal(t, big.NewInt(10), q.AmountIn.Raw())
	assert.Equal(t, big.NewInt(9), q.AmountOut.Raw())
}

func TestQuoteService_QuoteErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reader := newService(t, mock.NewMockReporter(ctrl))

	withNetwork := func(r app.QuoteRequest, network string) app.QuoteRequest {
		r.Network = network
		return r
	}
	identical := quoteReq(domain.ExactInput, amt(musdt, 10))
	identical.ReserveB = amt(musdt, 100)

	tests := []struct {
		name string
		req  app.QuoteRequest
		code apperror.Code
	}{
		{"unknown_network", withNetwork(quoteReq(domain.ExactInput, amt(musdc, 10)), "devnet"), apperror.CodeUnknownNetwork},
		{"wrong_chain", withNetwork(quoteReq(domain.ExactInput, amt(musdc, 10)), "mainnet"), apperror.CodeChainMismatch},
		{"identical_tokens", identical, apperror.CodeIdenticalTokens},
		{"token_not_in_pair", quoteReq(domain.ExactInput, amt(asset.WETHTestnet, 10)), apperror.CodeTokenNotInPair},
		{"dust_input", quoteReq(domain.ExactInput, amt(musdc, 1)), apperror.CodeInsufficientInputAmount},
		{"output_too_large", quoteReq(domain.ExactOutput, amt(musdt, 101)), apperror.CodeInsufficientLiquidity},
		{"missing_amount", quoteReq(domain.ExactInput, asset.Amount{}), apperror.CodeRequiredField},
		{"bad_trade_type", quoteReq(domain.TradeType(7), amt(musdc, 10)), apperror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := svc.Quote(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.Equal(t, tt.code, apperror.GetCode(err))
		})
	}

	assert.Equal(t, int64(len(tests)), counter(t, reader, "pairquote_quote_errors_total"))
	assert.Zero(t, counter(t, reader, "pairquote_quotes_total"))
}

func TestQuoteService_ReporterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockReporter(ctrl)
	svc, _ := newService(t, reporter)

	boom := errors.New("terminal closed")
	reporter.EXPECT().ReportQuote(gomock.Any(), gomock.Any()).Return(boom)

	_, err := svc.Quote(context.Background(), quoteReq(domain.ExactInput, amt(musdc, 10)))
	assert.Equal(t, apperror.CodeInternalError, apperror.GetCode(err))
	assert.ErrorIs(t, err, boom)
}

func TestQuoteService_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockReporter(ctrl)
	svc, _ := newService(t, reporter)

	reporter.EXPECT().ReportPair(gomock.Any(), gomock.Any()).Return(nil)

	pair, err := svc.Snapshot(context.Background(), app.SnapshotRequest{
		ReserveA: amt(musdt, 101),
		ReserveB: amt(musdc, 100),
	})
	require.NoError(t, err)
	assert.Equal(t, "testnet", pair.Deployment().Name, "empty network means the default")
	assert.True(t, pair.Token0().Equals(musdc))
}

func TestQuoteService_PairAddressIsCached(t *testing.T) {
	ctx := context.Background()
	svc, reader := newService(t, nil)

	first, err := svc.PairAddress(ctx, "testnet", musdt, musdc)
	require.NoError(t, err)
	second, err := svc.PairAddress(ctx, "testnet", musdc, musdt)
	require.NoError(t, err)

	assert.Equal(t, testnetPair, first.Hex())
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), counter(t, reader, "pairquote_address_cache_misses_total"))
	assert.Equal(t, int64(1), counter(t, reader, "pairquote_address_cache_hits_total"))

	mainnet, err := svc.PairAddress(ctx, "mainnet", asset.WETHMainnet, asset.USDCMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0x3Ab042Cb800f3D278031Ca88F75bb7F7FA867289", mainnet.Hex())

	_, err = svc.PairAddress(ctx, "mainnet", musdt, musdc)
	assert.Equal(t, apperror.CodeChainMismatch, apperror.GetCode(err))
	_, err = svc.PairAddress(ctx, "testnet", musdt, musdt)
	assert.Equal(t, apperror.CodeIdenticalTokens, apperror.GetCode(err))
}

func TestQuoteService_QuotePath(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	stable, err := domain.NewPair(domain.TestnetDeployment, amt(musdt, 101), amt(musdc, 100))
	require.NoError(t, err)
	weth, err := domain.NewPair(domain.TestnetDeployment, amt(musdt, 1000), amt(asset.WETHTestnet, 1000))
	require.NoError(t, err)

	t.Run("two_hops", func(t *testing.T) {
		pq, err := svc.QuotePath(ctx, []*domain.Pair{stable, weth}, amt(musdc, 10))
		require.NoError(t, err)

		require.Len(t, pq.Hops, 2)
		assert.Equal(t, big.NewInt(9), pq.Hops[0].AmountOut.Raw())
		assert.True(t, pq.AmountOut.Token().Equals(asset.WETHTestnet))
		assert.Equal(t, big.NewInt(8), pq.AmountOut.Raw())
		assert.True(t, pq.MidPrice.BaseToken().Equals(musdc))
		assert.True(t, pq.MidPrice.QuoteToken().Equals(asset.WETHTestnet))
		assert.Equal(t, "20.79%", pq.PriceImpact.String())
	})

	t.Run("reused_pair_uses_post_swap_state", func(t *testing.T) {
		pq, err := svc.QuotePath(ctx, []*domain.Pair{stable, stable}, amt(musdc, 10))
		require.NoError(t, err)

		assert.Same(t, pq.Hops[0].PairAfter, pq.Hops[1].Pair)
		assert.True(t, pq.AmountOut.Token().Equals(musdc))
		assert.Equal(t, big.NewInt(9), pq.AmountOut.Raw())
	})

	t.Run("disconnected", func(t *testing.T) {
		_, err := svc.QuotePath(ctx, []*domain.Pair{weth, stable}, amt(musdc, 10))
		assert.Equal(t, apperror.CodeInvalidPath, apperror.GetCode(err))
	})

	t.Run("nil_hop", func(t *testing.T) {
		_, err := svc.QuotePath(ctx, []*domain.Pair{stable, nil}, amt(musdc, 10))
		assert.Equal(t, apperror.CodeInvalidPath, apperror.GetCode(err))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.QuotePath(ctx, nil, amt(musdc, 10))
		assert.Equal(t, apperror.CodeInvalidPath, apperror.GetCode(err))
	})
}

func TestQuoteService_ResolveAndParse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	tok, err := svc.ResolveToken(ctx, "testnet", "musdc")
	require.NoError(t, err)
	assert.Same(t, musdc, tok)

	tok, err = svc.ResolveToken(ctx, "", "0xe39ab88f8a4777030a534146a9ca3b52bd5d43a3")
	require.NoError(t, err)
	assert.True(t, tok.Equals(asset.WETHTestnet))

	a, err := svc.ParseAmount(ctx, "testnet", "MUSDT", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", a.Raw().String())

	_, err = svc.ResolveToken(ctx, "testnet", "DAI")
	assert.Equal(t, apperror.CodeUnknownToken, apperror.GetCode(err))

	_, err = svc.ParseAmount(ctx, "testnet", "MUSDT", "1.5.5")
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
}

func TestNewBook(t *testing.T) {
	_, err := app.NewBook("devnet", domain.TestnetDeployment)
	assert.Equal(t, apperror.CodeUnknownNetwork, apperror.GetCode(err))

	_, err = app.NewBook("testnet", domain.TestnetDeployment, domain.TestnetDeployment)
	assert.Equal(t, apperror.CodeConfigurationError, apperror.GetCode(err))

	cfg, err := config.Load("")
	require.NoError(t, err)
	book, err := app.NewBookFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"mainnet", "testnet"}, book.Names())

	d, err := book.Deployment("")
	require.NoError(t, err)
	assert.Equal(t, domain.MainnetDeployment.Factory, d.Factory)
	assert.Equal(t, domain.MainnetDeployment.InitCodeHash, d.InitCodeHash)
	assert.Equal(t, "0.25%", d.Fee.String())
}
