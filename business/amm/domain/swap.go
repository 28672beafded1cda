package domain

import (
	"fmt"
	"math/big"

	"github.com/fd1az/pairquote/internal/asset"
	"github.com/fd1az/pairquote/internal/fraction"
)

var one = big.NewInt(1)

// GetOutputAmount returns how much of the other token a swap of input yields,
// and the pair after the swap:
//
//	out = floor(in*fn*rOut / (rIn*fd + in*fn))
func (p *Pair) GetOutputAmount(input asset.Amount) (asset.Amount, *Pair, error) {
	if !p.InvolvesToken(input.Token()) {
		return asset.Amount{}, nil, p.notInPair(input.Token())
	}
	if p.reserve0.IsZero() || p.reserve1.IsZero() {
		return asset.Amount{}, nil, fmt.Errorf("%w: %s has an empty reserve", ErrInsufficientLiquidity, p)
	}

	reserveIn, reserveOut := p.reserves(input.Token())
	fee := p.deployment.Fee

	inWithFee := new(big.Int).Mul(input.Raw(), fee.Numerator())
	numerator := new(big.Int).Mul(inWithFee, reserveOut.Raw())
	denominator := new(big.Int).Add(new(big.Int).Mul(reserveIn.Raw(), fee.Denominator()), inWithFee)

	out := fraction.New(numerator, denominator).QuotientRounded(fraction.RoundDown)
	if out.Sign() == 0 {
		return asset.Amount{}, nil, fmt.Errorf("%w: %s yields nothing", ErrInsufficientInputAmount, input)
	}

	output := asset.NewAmount(reserveOut.Token(), out)
	next, err := p.afterSwap(reserveIn, input, reserveOut, output)
	if err != nil {
		return asset.Amount{}, nil, err
	}
	return output, next, nil
}

// GetInputAmount returns the input needed to receive output, and the pair
// after the swap:
//
//	in = floor(rIn*out*fd / ((rOut-out)*fn)) + 1
//
// The +1 makes the quote sufficient after the contract's own truncation.
func (p *Pair) GetInputAmount(output asset.Amount) (asset.Amount, *Pair, error) {
	if !p.InvolvesToken(output.Token()) {
		return asset.Amount{}, nil, p.notInPair(output.Token())
	}

	reserveOut, reserveIn := p.reserves(output.Token())
	if p.reserve0.IsZero() || p.reserve1.IsZero() || output.Raw().Cmp(reserveOut.Raw()) >= 0 {
		return asset.Amount{}, nil, fmt.Errorf("%w: requested %s, reserve is %s", ErrInsufficientLiquidity, output, reserveOut)
	}

	fee := p.deployment.Fee

	numerator := new(big.Int).Mul(reserveIn.Raw(), output.Raw())
	numerator.Mul(numerator, fee.Denominator())
	denominator := new(big.Int).Sub(reserveOut.Raw(), output.Raw())
	denominator.Mul(denominator, fee.Numerator())

	in := fraction.New(numerator, denominator).QuotientRounded(fraction.RoundDown)
	in.Add(in, one)

	input, err := asset.TryNewAmount(reserveIn.Token(), in)
	if err != nil {
		return asset.Amount{}, nil, fmt.Errorf("%w: %v", ErrInsufficientLiquidity, err)
	}
	next, err := p.afterSwap(reserveIn, input, reserveOut, output)
	if err != nil {
		return asset.Amount{}, nil, err
	}
	return input, next, nil
}

func (p *Pair) afterSwap(reserveIn, input, reserveOut, output asset.Amount) (*Pair, error) {
	newIn, err := reserveIn.Add(input)
	if err != nil {
		return nil, err
	}
	newOut, err := reserveOut.Sub(output)
	if err != nil {
		return nil, err
	}
	return p.withReserves(newIn, newOut)
}
