package domain

import (
	"fmt"
	"math/big"

	"github.com/fd1az/pairquote/internal/asset"
)

// MinimumLiquidity is burned from the first mint of every pair.
var MinimumLiquidity = big.NewInt(1000)

// GetLiquidityMinted returns the LP tokens minted for depositing amountA and
// amountB (in any order) when totalSupply LP tokens exist.
func (p *Pair) GetLiquidityMinted(totalSupply, amountA, amountB asset.Amount) (asset.Amount, error) {
	if err := p.checkLiquidityToken(totalSupply); err != nil {
		return asset.Amount{}, err
	}

	amount0, amount1 := amountA, amountB
	if amountA.Token().Equals(p.Token1()) {
		amount0, amount1 = amountB, amountA
	}
	if !amount0.Token().Equals(p.Token0()) || !amount1.Token().Equals(p.Token1()) {
		return asset.Amount{}, fmt.Errorf("%w: deposit must be %s and %s", ErrTokenNotInPair, p.Token0(), p.Token1())
	}

	var liquidity *big.Int
	if totalSupply.IsZero() {
		liquidity = new(big.Int).Mul(amount0.Raw(), amount1.Raw())
		liquidity.Sqrt(liquidity)
		liquidity.Sub(liquidity, MinimumLiquidity)
	} else {
		if p.reserve0.IsZero() || p.reserve1.IsZero() {
			return asset.Amount{}, fmt.Errorf("%w: %s has supply but an empty reserve", ErrInsufficientLiquidity, p)
		}
		l0 := new(big.Int).Mul(amount0.Raw(), totalSupply.Raw())
		l0.Quo(l0, p.reserve0.Raw())
		l1 := new(big.Int).Mul(amount1.Raw(), totalSupply.Raw())
		l1.Quo(l1, p.reserve1.Raw())
		liquidity = l0
		if l1.Cmp(l0) < 0 {
			liquidity = l1
		}
	}

	if liquidity.Sign() <= 0 {
		return asset.Amount{}, fmt.Errorf("%w: deposit mints no liquidity", ErrInsufficientInputAmount)
	}
	return asset.TryNewAmount(p.liquidityToken, liquidity)
}

// GetLiquidityValue returns how much of token a holder of liquidity LP tokens
// can withdraw. With feeOn, kLast is the reserve product at the last
// mint/burn and the protocol fee accrued since then dilutes the supply.
func (p *Pair) GetLiquidityValue(token *asset.Token, totalSupply, liquidity asset.Amount, feeOn bool, kLast *big.Int) (asset.Amount, error) {
	reserve, err := p.ReserveOf(token)
	if err != nil {
		return asset.Amount{}, err
	}
	if err := p.checkLiquidityToken(totalSupply); err != nil {
		return asset.Amount{}, err
	}
	if err := p.checkLiquidityToken(liquidity); err != nil {
		return asset.Amount{}, err
	}
	if liquidity.Raw().Cmp(totalSupply.Raw()) > 0 {
		return asset.Amount{}, fmt.Errorf("%w: %s > %s", ErrLiquidityExceedsSupply, liquidity, totalSupply)
	}

	supply := totalSupply.Raw()
	if feeOn {
		if kLast == nil {
			return asset.Amount{}, ErrMissingKLast
		}
		supply.Add(supply, p.protocolFeeLiquidity(supply, kLast))
	}
	if supply.Sign() == 0 {
		return asset.Amount{}, fmt.Errorf("%w: total supply is zero", ErrInsufficientLiquidity)
	}

	value := new(big.Int).Mul(liquidity.Raw(), reserve.Raw())
	value.Quo(value, supply)
	return asset.NewAmount(token, value), nil
}

// protocolFeeLiquidity mirrors the factory's _mintFee: one sixth of the
// growth in sqrt(k) since kLast is minted to the fee recipient.
func (p *Pair) protocolFeeLiquidity(supply, kLast *big.Int) *big.Int {
	if kLast.Sign() == 0 {
		return new(big.Int)
	}

	rootK := new(big.Int).Mul(p.reserve0.Raw(), p.reserve1.Raw())
	rootK.Sqrt(rootK)
	rootKLast := new(big.Int).Sqrt(kLast)
	if rootK.Cmp(rootKLast) <= 0 {
		return new(big.Int)
	}

	numerator := new(big.Int).Sub(rootK, rootKLast)
	numerator.Mul(numerator, supply)
	denominator := new(big.Int).Mul(rootK, big.NewInt(5))
	denominator.Add(denominator, rootKLast)
	return numerator.Quo(numerator, denominator)
}

func (p *Pair) checkLiquidityToken(a asset.Amount) error {
	if !a.Token().Equals(p.liquidityToken) {
		return fmt.Errorf("%w: expected %s liquidity, got %s", asset.ErrTokenMismatch, p, a.Token())
	}
	return nil
}
