package asset

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/fd1az/pairquote/internal/fraction"
)

// Common errors
var (
	ErrNilToken        = errors.New("asset: nil token")
	ErrNilRaw          = errors.New("asset: nil raw value")
	ErrNegativeAmount  = errors.New("asset: negative amount")
	ErrAmountOverflow  = errors.New("asset: amount exceeds uint256")
	ErrTokenMismatch   = errors.New("asset: cannot operate on different tokens")
	ErrNegativeResult  = errors.New("asset: operation would result in negative amount")
	ErrTooManyDecimals = errors.New("asset: too many decimal places for token")
	ErrInvalidAmount   = errors.New("asset: invalid amount")
)

// Amount is an immutable Value Object representing a quantity of a token.
// The raw value is always in the smallest unit and fits in a uint256.
type Amount struct {
	raw   *big.Int
	token *Token
}

// NewAmount creates a new Amount from a raw big.Int value.
// The raw value must be in the smallest unit (wei, etc) and panics if it is
// nil, negative or wider than 256 bits.
func NewAmount(token *Token, raw *big.Int) Amount {
	a, err := TryNewAmount(token, raw)
	if err != nil {
		panic(err)
	}
	return a
}

// TryNewAmount is NewAmount returning the violated precondition as an error.
func TryNewAmount(token *Token, raw *big.Int) (Amount, error) {
	if token == nil {
		return Amount{}, ErrNilToken
	}
	if raw == nil {
		return Amount{}, ErrNilRaw
	}
	if raw.Sign() < 0 {
		return Amount{}, ErrNegativeAmount
	}
	if _, overflow := uint256.FromBig(raw); overflow {
		return Amount{}, ErrAmountOverflow
	}

	return Amount{
		raw:   new(big.Int).Set(raw),
		token: token,
	}, nil
}

// Zero creates a zero Amount for the given token.
func Zero(token *Token) Amount {
	return NewAmount(token, big.NewInt(0))
}

// NewAmountFromInt64 creates an Amount from an int64 raw value.
func NewAmountFromInt64(token *Token, raw int64) Amount {
	return NewAmount(token, big.NewInt(raw))
}

// Raw returns a copy of the raw big.Int value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.raw)
}

// Token returns the token this amount is denominated in.
func (a Amount) Token() *Token {
	return a.token
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a.raw != nil && a.raw.Sign() > 0
}

// -----------------------------------------------------------------------------
// Arithmetic Operations (type-safe, same token only)
// -----------------------------------------------------------------------------

// Add adds two amounts of the same token.
func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.checkSameToken(b); err != nil {
		return Amount{}, err
	}

	return TryNewAmount(a.token, new(big.Int).Add(a.raw, b.raw))
}

// MustAdd adds two amounts, panics on error.
func (a Amount) MustAdd(b Amount) Amount {
	result, err := a.Add(b)
	if err != nil {
		panic(err)
	}
	return result
}

// Sub subtracts b from a (same token only).
func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.checkSameToken(b); err != nil {
		return Amount{}, err
	}

	if a.raw.Cmp(b.raw) < 0 {
		return Amount{}, ErrNegativeResult
	}

	diff := new(big.Int).Sub(a.raw, b.raw)
	return NewAmount(a.token, diff), nil
}

// MustSub subtracts b from a, panics on error.
func (a Amount) MustSub(b Amount) Amount {
	result, err := a.Sub(b)
	if err != nil {
		panic(err)
	}
	return result
}

// -----------------------------------------------------------------------------
// Comparison Operations
// -----------------------------------------------------------------------------

// Cmp compares two amounts of the same token.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func (a Amount) Cmp(b Amount) (int, error) {
	if err := a.checkSameToken(b); err != nil {
		return 0, err
	}
	return a.raw.Cmp(b.raw), nil
}

// Equals returns true if both amounts are equal (same token and value).
func (a Amount) Equals(b Amount) bool {
	if !a.token.Equals(b.token) {
		return false
	}
	return a.Raw().Cmp(b.Raw()) == 0
}

// GreaterThan returns true if a > b.
func (a Amount) GreaterThan(b Amount) (bool, error) {
	cmp, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) (bool, error) {
	cmp, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// -----------------------------------------------------------------------------
// Exact views
// -----------------------------------------------------------------------------

// Fraction returns the amount in whole tokens as an exact fraction
// (raw / 10^decimals).
func (a Amount) Fraction() fraction.Fraction {
	return fraction.New(a.Raw(), decimalScale(a.token.Decimals()))
}

// ToExact returns the exact decimal value with no rounding, e.g. "1.5".
func (a Amount) ToExact() string {
	return decimal.NewFromBigInt(a.Raw(), -int32(a.token.Decimals())).String()
}

// ToSignificant renders the amount with sig significant digits.
func (a Amount) ToSignificant(sig int, r fraction.Rounding) string {
	return a.Fraction().ToSignificant(sig, r)
}

// ToFixed renders the amount with places decimals. places may not exceed the
// token's decimals.
func (a Amount) ToFixed(places int, r fraction.Rounding) string {
	if places > int(a.token.Decimals()) {
		panic(fmt.Sprintf("asset: %d places exceeds %s decimals (%d)", places, a.token, a.token.Decimals()))
	}
	return a.Fraction().ToFixed(places, r)
}

// -----------------------------------------------------------------------------
// Boundary Functions (decimal parsing - user input)
// -----------------------------------------------------------------------------

// ParseDecimal creates an Amount from a human-readable decimal value.
func ParseDecimal(token *Token, d decimal.Decimal) (Amount, error) {
	if token == nil {
		return Amount{}, ErrNilToken
	}
	if d.IsNegative() {
		return Amount{}, ErrNegativeAmount
	}

	// Scale up by decimals
	scaled := d.Shift(int32(token.Decimals()))

	// Check if result is an integer (no fractional part lost)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Amount{}, ErrTooManyDecimals
	}

	return TryNewAmount(token, scaled.BigInt())
}

// ParseString creates an Amount from a human-readable decimal string ("1.5").
func ParseString(token *Token, s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return ParseDecimal(token, d)
}

// ParseRaw creates an Amount from a base-10 string of smallest units.
func ParseRaw(token *Token, s string) (Amount, error) {
	if token == nil {
		return Amount{}, ErrNilToken
	}
	raw, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return TryNewAmount(token, raw)
}

// -----------------------------------------------------------------------------
// Display
// -----------------------------------------------------------------------------

// String returns a human-readable representation (e.g., "1.5 WETH").
func (a Amount) String() string {
	if a.token == nil {
		return "0 ???"
	}
	return fmt.Sprintf("%s %s", a.ToExact(), a.token)
}

// -----------------------------------------------------------------------------
// Internal helpers
// -----------------------------------------------------------------------------

func (a Amount) checkSameToken(b Amount) error {
	if a.token == nil || b.token == nil {
		return ErrNilToken
	}
	if !a.token.Equals(b.token) {
		return fmt.Errorf("%w: %s vs %s", ErrTokenMismatch, a.token.ID(), b.token.ID())
	}
	return nil
}

func decimalScale(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}
