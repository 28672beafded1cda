package asset

import (
	"fmt"
	"math/big"
)

// Chain IDs of the networks the exchange is deployed on.
const (
	ChainIDMainnet uint64 = 42161
	ChainIDTestnet uint64 = 421613
)

// SolidityType names the on-chain integer types amounts must fit.
type SolidityType string

const (
	Uint8   SolidityType = "uint8"
	Uint256 SolidityType = "uint256"
)

// MaxUint256 is 2^256 - 1.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

var solidityMaxima = map[SolidityType]*big.Int{
	Uint8:   big.NewInt(0xff),
	Uint256: MaxUint256,
}

// ValidateSolidityValue checks that v is a valid instance of t.
func ValidateSolidityValue(t SolidityType, v *big.Int) error {
	maximum, ok := solidityMaxima[t]
	if !ok {
		return fmt.Errorf("asset: unknown solidity type %q", t)
	}
	if v.Sign() < 0 || v.Cmp(maximum) > 0 {
		return fmt.Errorf("%w: %s is not a %s", ErrInvalidAmount, v, t)
	}
	return nil
}

// Wrapped ether per network.
var (
	WETHMainnet = MustNewToken(ChainIDMainnet, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", 18, "WETH", "Wrapped Ether")
	WETHTestnet = MustNewToken(ChainIDTestnet, "0xe39Ab88f8A4777030A534146A9Ca3B52bd5D43A3", 18, "WETH", "Wrapped Ether")

	USDCMainnet = MustNewToken(ChainIDMainnet, "0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8", 6, "USDC", "USD Coin")
)

// WETH maps chain ID to the wrapped native token.
var WETH = map[uint64]*Token{
	ChainIDMainnet: WETHMainnet,
	ChainIDTestnet: WETHTestnet,
}

// DefaultRegistry returns a registry pre-populated with well-known tokens.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(WETHMainnet)
	r.MustRegister(USDCMainnet)
	r.MustRegister(WETHTestnet)

	return r
}
