package domain

import (
	"errors"

	"github.com/fd1az/pairquote/internal/asset"
)

// Errors returned by pair construction and swap math. All of them describe
// invalid input; none is transient.
var (
	ErrChainMismatch   = asset.ErrChainMismatch
	ErrIdenticalTokens = asset.ErrIdenticalTokens

	ErrTokenNotInPair          = errors.New("amm: token not in pair")
	ErrInsufficientLiquidity   = errors.New("amm: insufficient liquidity")
	ErrInsufficientInputAmount = errors.New("amm: insufficient input amount")
	ErrLiquidityExceedsSupply  = errors.New("amm: liquidity exceeds total supply")
	ErrMissingKLast            = errors.New("amm: kLast required when protocol fee is on")
	ErrInvalidFee              = errors.New("amm: invalid fee")
	ErrInvalidDeployment       = errors.New("amm: invalid deployment")
)
