// Package domain contains the constant-product pair and its swap math.
package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/pairquote/internal/asset"
)

// Liquidity token metadata. Every pair mints an 18-decimals token at its own address.
const (
	LiquidityDecimals = 18
	LiquiditySymbol   = "V2-LP"
	LiquidityName     = "V2 Liquidity"
)

// Pair is a point-in-time snapshot of a pair's reserves. It is immutable:
// swaps return a new Pair.
type Pair struct {
	deployment     Deployment
	address        common.Address
	reserve0       asset.Amount
	reserve1       asset.Amount
	liquidityToken *asset.Token
}

// NewPair builds a pair from two amounts in any order. token0 is always the
// token whose address sorts first.
func NewPair(d Deployment, amountA, amountB asset.Amount) (*Pair, error) {
	tokenA, tokenB := amountA.Token(), amountB.Token()
	if tokenA == nil || tokenB == nil {
		return nil, asset.ErrNilToken
	}

	before, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return nil, err
	}
	if err := d.checkChain(tokenA, tokenB); err != nil {
		return nil, err
	}

	reserve0, reserve1 := amountA, amountB
	if !before {
		reserve0, reserve1 = amountB, amountA
	}

	addr, err := ComputePairAddress(d.Factory, d.InitCodeHash, reserve0.Token(), reserve1.Token())
	if err != nil {
		return nil, err
	}

	return &Pair{
		deployment:     d,
		address:        addr,
		reserve0:       reserve0,
		reserve1:       reserve1,
		liquidityToken: asset.NewToken(d.ChainID, addr, LiquidityDecimals, LiquiditySymbol, LiquidityName),
	}, nil
}

// withReserves returns a pair on the same deployment with new reserves.
func (p *Pair) withReserves(a, b asset.Amount) (*Pair, error) {
	return NewPair(p.deployment, a, b)
}

// Address returns the deterministic pair address.
func (p *Pair) Address() common.Address { return p.address }

func (p *Pair) ChainID() uint64 { return p.deployment.ChainID }

func (p *Pair) Deployment() Deployment { return p.deployment }

func (p *Pair) Token0() *asset.Token { return p.reserve0.Token() }

func (p *Pair) Token1() *asset.Token { return p.reserve1.Token() }

func (p *Pair) Reserve0() asset.Amount { return p.reserve0 }

func (p *Pair) Reserve1() asset.Amount { return p.reserve1 }

// LiquidityToken returns the pair's own LP token.
func (p *Pair) LiquidityToken() *asset.Token { return p.liquidityToken }

// InvolvesToken reports whether t is token0 or token1.
func (p *Pair) InvolvesToken(t *asset.Token) bool {
	return t.Equals(p.Token0()) || t.Equals(p.Token1())
}

// ReserveOf returns the reserve of t.
func (p *Pair) ReserveOf(t *asset.Token) (asset.Amount, error) {
	switch {
	case t.Equals(p.Token0()):
		return p.reserve0, nil
	case t.Equals(p.Token1()):
		return p.reserve1, nil
	default:
		return asset.Amount{}, p.notInPair(t)
	}
}

// Token0Price is the price of token0 in token1 (reserve1 / reserve0).
func (p *Pair) Token0Price() (asset.Price, error) {
	if p.reserve0.IsZero() {
		return asset.Price{}, fmt.Errorf("%w: %s reserve is zero", ErrInsufficientLiquidity, p.Token0())
	}
	return asset.PriceFromAmounts(p.reserve0, p.reserve1), nil
}

// Token1Price is the price of token1 in token0 (reserve0 / reserve1).
func (p *Pair) Token1Price() (asset.Price, error) {
	if p.reserve1.IsZero() {
		return asset.Price{}, fmt.Errorf("%w: %s reserve is zero", ErrInsufficientLiquidity, p.Token1())
	}
	return asset.PriceFromAmounts(p.reserve1, p.reserve0), nil
}

// PriceOf returns the price of t in terms of the other token.
func (p *Pair) PriceOf(t *asset.Token) (asset.Price, error) {
	switch {
	case t.Equals(p.Token0()):
		return p.Token0Price()
	case t.Equals(p.Token1()):
		return p.Token1Price()
	default:
		return asset.Price{}, p.notInPair(t)
	}
}

// String returns e.g. "MUSDC/MUSDT@0xF395...".
func (p *Pair) String() string {
	return fmt.Sprintf("%s/%s@%s", p.Token0(), p.Token1(), p.address.Hex())
}

// reserves returns (reserveIn, reserveOut) for a swap that takes in tokens.
func (p *Pair) reserves(in *asset.Token) (asset.Amount, asset.Amount) {
	if in.Equals(p.Token0()) {
		return p.reserve0, p.reserve1
	}
	return p.reserve1, p.reserve0
}

func (p *Pair) notInPair(t *asset.Token) error {
	if t == nil {
		return asset.ErrNilToken
	}
	return fmt.Errorf("%w: %s not in %s", ErrTokenNotInPair, t.ID(), p)
}
