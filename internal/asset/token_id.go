// Package asset provides the token, amount and price value objects.
// The core uses big.Int and exact fractions for on-chain representation;
// decimal.Decimal is only used at boundaries (parsing, display).
package asset

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID uniquely identifies a token by chain and contract address.
// This is the TRUE identity - not the symbol.
type TokenID struct {
	chainID uint64
	address common.Address
}

// NewTokenID creates a TokenID for an ERC20 token.
func NewTokenID(chainID uint64, addr common.Address) TokenID {
	if addr == (common.Address{}) {
		panic("asset: token address cannot be zero")
	}
	return TokenID{
		chainID: chainID,
		address: addr,
	}
}

// ChainID returns the network the token lives on.
func (id TokenID) ChainID() uint64 {
	return id.chainID
}

// Address returns the token contract address.
func (id TokenID) Address() common.Address {
	return id.address
}

// String returns a human-readable representation.
func (id TokenID) String() string {
	return fmt.Sprintf("chain:%d/%s", id.chainID, id.address.Hex())
}

// Equals compares chain and address. Addresses are compared as bytes, so the
// textual case they were parsed from does not matter.
func (id TokenID) Equals(other TokenID) bool {
	return id.chainID == other.chainID && id.address == other.address
}
