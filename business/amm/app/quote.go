package app

import (
	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/fraction"
)

// SnapshotRequest describes a pair by its reserves, in any token order.
type SnapshotRequest struct {
	Network  string // "" for the default network
	ReserveA asset.Amount
	ReserveB asset.Amount
}

// QuoteRequest asks for a swap quote against a pair snapshot.
// For ExactInput, Amount is what goes in; for ExactOutput, what must come out.
type QuoteRequest struct {
	SnapshotRequest
	TradeType domain.TradeType
	Amount    asset.Amount
}

// Quote is the outcome of one swap against one pair.
type Quote struct {
	TradeType      domain.TradeType
	Network        string
	Pair           *domain.Pair
	PairAfter      *domain.Pair
	AmountIn       asset.Amount
	AmountOut      asset.Amount
	MidPrice       asset.Price // tokenIn in tokenOut, before the swap
	ExecutionPrice asset.Price // AmountOut / AmountIn
	PriceImpact    fraction.Percent
}

// Hop is one leg of a path quote.
type Hop struct {
	Pair      *domain.Pair
	PairAfter *domain.Pair
	AmountIn  asset.Amount
	AmountOut asset.Amount
}

// PathQuote is an exact-input swap chained through several pairs.
type PathQuote struct {
	Hops           []Hop
	AmountIn       asset.Amount
	AmountOut      asset.Amount
	MidPrice       asset.Price
	ExecutionPrice asset.Price
	PriceImpact    fraction.Percent
}

// priceImpact is (mid*in - out) / (mid*in): the share of the output lost to
// the trade moving the price, fee included.
func priceImpact(mid asset.Price, in, out asset.Amount) fraction.Percent {
	quoted := mid.Raw().MulInt(in.Raw())
	if quoted.IsZero() {
		return fraction.Percent{}
	}
	return fraction.PercentOf(quoted.Sub(fraction.FromBigInt(out.Raw())).Div(quoted))
}
