package asset

import (
	"fmt"
	"math/big"

	"github.com/fd1az/pairquote/internal/fraction"
)

// Price is an exchange rate: 1 unit of base is worth Adjusted() units of quote.
// The raw ratio is kept in smallest units and the decimal shift is applied
// only when the adjusted value is requested.
type Price struct {
	base   *Token
	quote  *Token
	raw    fraction.Fraction // quote raw per base raw
	scalar fraction.Fraction // 10^baseDecimals / 10^quoteDecimals
}

// NewPrice creates a price from a raw ratio: denominator units of base buy
// numerator units of quote.
func NewPrice(base, quote *Token, denominator, numerator *big.Int) Price {
	if base == nil || quote == nil {
		panic("asset: nil base or quote in price")
	}

	return Price{
		base:   base,
		quote:  quote,
		raw:    fraction.New(numerator, denominator),
		scalar: fraction.New(decimalScale(base.Decimals()), decimalScale(quote.Decimals())),
	}
}

// PriceFromAmounts returns the price implied by exchanging base for quote.
func PriceFromAmounts(base, quote Amount) Price {
	return NewPrice(base.Token(), quote.Token(), base.Raw(), quote.Raw())
}

// BaseToken returns the token being priced.
func (p Price) BaseToken() *Token {
	return p.base
}

// QuoteToken returns the unit the price is expressed in.
func (p Price) QuoteToken() *Token {
	return p.quote
}

// Raw returns the unadjusted ratio of smallest units.
func (p Price) Raw() fraction.Fraction {
	return p.raw
}

// Adjusted returns the ratio of whole tokens.
func (p Price) Adjusted() fraction.Fraction {
	return p.raw.Mul(p.scalar)
}

// Invert returns the quote/base price.
func (p Price) Invert() Price {
	return NewPrice(p.quote, p.base, p.raw.Numerator(), p.raw.Denominator())
}

// Multiply chains p (A/B) with other (B/C) into an A/C price.
func (p Price) Multiply(other Price) (Price, error) {
	if !p.quote.Equals(other.base) {
		return Price{}, fmt.Errorf("%w: %s quote vs %s base", ErrTokenMismatch, p.quote, other.base)
	}
	r := p.raw.Mul(other.raw)
	return NewPrice(p.base, other.quote, r.Denominator(), r.Numerator()), nil
}

// Quote converts an amount of the base token into the quote token,
// truncating toward zero.
func (p Price) Quote(amount Amount) (Amount, error) {
	return p.QuoteRounded(amount, fraction.RoundDown)
}

// QuoteRounded is Quote with an explicit rounding mode.
func (p Price) QuoteRounded(amount Amount, r fraction.Rounding) (Amount, error) {
	if !amount.Token().Equals(p.base) {
		return Amount{}, fmt.Errorf("%w: expected %s, got %s", ErrTokenMismatch, p.base, amount.Token())
	}
	return TryNewAmount(p.quote, p.raw.MulInt(amount.Raw()).QuotientRounded(r))
}

// Equals reports whether both prices relate the same tokens at the same value.
func (p Price) Equals(other Price) bool {
	return p.base.Equals(other.base) &&
		p.quote.Equals(other.quote) &&
		p.raw.EqualTo(other.raw)
}

// ToSignificant renders the adjusted price.
func (p Price) ToSignificant(sig int, r fraction.Rounding) string {
	return p.Adjusted().ToSignificant(sig, r)
}

// ToFixed renders the adjusted price with a fixed number of decimals.
func (p Price) ToFixed(places int, r fraction.Rounding) string {
	return p.Adjusted().ToFixed(places, r)
}

// Pair returns the trading pair symbol (e.g., "WETH/USDC").
func (p Price) Pair() string {
	if p.base == nil || p.quote == nil {
		return "???/???"
	}
	return fmt.Sprintf("%s/%s", p.base, p.quote)
}

// String returns a human-readable representation.
func (p Price) String() string {
	if p.base == nil || p.quote == nil {
		return "0 ???/???"
	}
	return fmt.Sprintf("%s %s", p.ToSignificant(6, fraction.RoundHalfUp), p.Pair())
}
