package fraction

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToSignificant renders f with sig significant digits, trailing zeros trimmed.
// The rounding is done on big.Int; decimal is used only to print the result.
func (f Fraction) ToSignificant(sig int, r Rounding) string {
	if sig <= 0 {
		panic(fmt.Sprintf("fraction: significant digits must be positive, got %d", sig))
	}
	if f.IsZero() {
		return "0"
	}

	a := new(big.Int).Abs(f.numerator())
	b := new(big.Int).Abs(f.denominator())

	// scale so the rounded integer has exactly sig digits
	k := sig - 1 - magnitude(a, b)
	scaled := scaleRound(a, b, k, r)
	if scaled.Cmp(pow10(sig)) >= 0 {
		// rounding carried into a new digit (9.99 -> 10.0)
		scaled.Quo(scaled, ten)
		k--
	}
	if f.Sign() < 0 {
		scaled.Neg(scaled)
	}

	return decimal.NewFromBigInt(scaled, int32(-k)).String()
}

// ToFixed renders f with exactly places digits after the decimal point.
func (f Fraction) ToFixed(places int, r Rounding) string {
	if places < 0 {
		panic(fmt.Sprintf("fraction: decimal places must not be negative, got %d", places))
	}
	scaled := roundQuo(new(big.Int).Mul(f.numerator(), pow10(places)), f.denominator(), r)
	return decimal.NewFromBigInt(scaled, int32(-places)).StringFixed(int32(places))
}

// magnitude returns floor(log10(a/b)) for positive a and b.
func magnitude(a, b *big.Int) int {
	e := len(a.String()) - len(b.String())

	l, rr := new(big.Int).Set(a), new(big.Int).Set(b)
	if e >= 0 {
		rr.Mul(rr, pow10(e))
	} else {
		l.Mul(l, pow10(-e))
	}
	if l.Cmp(rr) < 0 {
		e--
	}
	return e
}

// scaleRound returns a * 10^k / b rounded with r, for k of either sign.
func scaleRound(a, b *big.Int, k int, r Rounding) *big.Int {
	if k >= 0 {
		return roundQuo(new(big.Int).Mul(a, pow10(k)), b, r)
	}
	return roundQuo(a, new(big.Int).Mul(b, pow10(-k)), r)
}
