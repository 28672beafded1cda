package asset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidAddress  = errors.New("asset: invalid address")
	ErrChainMismatch   = errors.New("asset: tokens are on different chains")
	ErrIdenticalTokens = errors.New("asset: identical tokens")
)

// Token is an ERC20 token. It is immutable and freely shared.
// Symbol and name are display metadata, not identity.
type Token struct {
	id       TokenID
	symbol   string
	name     string
	decimals uint8
}

// NewToken creates a token on the given chain.
func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) *Token {
	return &Token{
		id:       NewTokenID(chainID, address),
		symbol:   symbol,
		name:     name,
		decimals: decimals,
	}
}

// MustNewToken parses address with ParseAddress and panics on failure.
// Intended for package-level well-known tokens.
func MustNewToken(chainID uint64, address string, decimals uint8, symbol, name string) *Token {
	addr, err := ParseAddress(address)
	if err != nil {
		panic(err)
	}
	return NewToken(chainID, addr, decimals, symbol, name)
}

// ParseAddress parses a 0x-prefixed hex address. All-lowercase and
// all-uppercase input is accepted as is; mixed case must carry a valid
// EIP-55 checksum. The zero address is never a token.
func ParseAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: zero address", ErrInvalidAddress)
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return addr, nil
	}
	if addr.Hex() != s {
		return common.Address{}, fmt.Errorf("%w: bad checksum %q", ErrInvalidAddress, s)
	}
	return addr, nil
}

// ID returns the unique identifier for this token.
func (t *Token) ID() TokenID {
	return t.id
}

// ChainID returns the network identifier.
func (t *Token) ChainID() uint64 {
	return t.id.ChainID()
}

// Address returns the token contract address.
func (t *Token) Address() common.Address {
	return t.id.Address()
}

// Symbol returns the ticker symbol (e.g., "WETH"), possibly empty.
func (t *Token) Symbol() string {
	return t.symbol
}

// Name returns the human-readable name, falling back to the symbol.
func (t *Token) Name() string {
	if t.name == "" {
		return t.symbol
	}
	return t.name
}

// Decimals returns the number of decimal places.
func (t *Token) Decimals() uint8 {
	return t.decimals
}

// Equals compares two tokens by their ID.
func (t *Token) Equals(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id.Equals(other.id)
}

// SortsBefore reports whether t orders before other by address. Tokens on
// different chains, and identical tokens, cannot be ordered.
func (t *Token) SortsBefore(other *Token) (bool, error) {
	if t.ChainID() != other.ChainID() {
		return false, fmt.Errorf("%w: %d vs %d", ErrChainMismatch, t.ChainID(), other.ChainID())
	}
	if t.Address() == other.Address() {
		return false, fmt.Errorf("%w: %s", ErrIdenticalTokens, t.Address().Hex())
	}
	// byte order equals lowercase hex order
	return bytes.Compare(t.id.address[:], other.id.address[:]) < 0, nil
}

// SortTokens returns a and b in canonical order.
func SortTokens(a, b *Token) (token0, token1 *Token, err error) {
	before, err := a.SortsBefore(b)
	if err != nil {
		return nil, nil, err
	}
	if before {
		return a, b, nil
	}
	return b, a, nil
}

// String returns the symbol, or the address when the token has none.
func (t *Token) String() string {
	if t.symbol == "" {
		return t.Address().Hex()
	}
	return t.symbol
}
