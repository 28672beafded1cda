// Package fraction provides exact rational arithmetic over big.Int.
// Values are never reduced implicitly; rounding happens only when a caller
// asks for an integer (Quotient) or a display string (ToSignificant, ToFixed).
package fraction

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrZeroDenominator = errors.New("fraction: zero denominator")
	ErrInvalidFraction = errors.New("fraction: invalid fraction string")
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	ten  = big.NewInt(10)
)

// Fraction is an immutable rational number num/den.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// New creates num/den. Panics with ErrZeroDenominator if den is zero.
func New(num, den *big.Int) Fraction {
	if num == nil || den == nil {
		panic("fraction: nil operand")
	}
	if den.Sign() == 0 {
		panic(ErrZeroDenominator)
	}
	return Fraction{
		num: new(big.Int).Set(num),
		den: new(big.Int).Set(den),
	}
}

// NewFromInt64 creates num/den from machine integers.
func NewFromInt64(num, den int64) Fraction {
	return New(big.NewInt(num), big.NewInt(den))
}

// FromBigInt creates n/1.
func FromBigInt(n *big.Int) Fraction {
	return New(n, one)
}

// Parse accepts "a/b", an integer or a decimal string ("1.25" becomes 125/100).
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if numStr, denStr, ok := strings.Cut(s, "/"); ok {
		num, ok1 := new(big.Int).SetString(strings.TrimSpace(numStr), 10)
		den, ok2 := new(big.Int).SetString(strings.TrimSpace(denStr), 10)
		if !ok1 || !ok2 {
			return Fraction{}, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
		}
		if den.Sign() == 0 {
			return Fraction{}, ErrZeroDenominator
		}
		return New(num, den), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: %q", ErrInvalidFraction, s)
	}
	if exp := d.Exponent(); exp < 0 {
		return New(d.Coefficient(), pow10(int(-exp))), nil
	}
	return FromBigInt(d.BigInt()), nil
}

// Numerator returns a copy of the numerator.
func (f Fraction) Numerator() *big.Int {
	return new(big.Int).Set(f.numerator())
}

// Denominator returns a copy of the denominator.
func (f Fraction) Denominator() *big.Int {
	return new(big.Int).Set(f.denominator())
}

// Sign returns -1, 0 or +1.
func (f Fraction) Sign() int {
	return f.numerator().Sign() * f.denominator().Sign()
}

func (f Fraction) IsZero() bool {
	return f.numerator().Sign() == 0
}

// Quotient returns num/den truncated toward zero, matching on-chain integer division.
func (f Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.numerator(), f.denominator())
}

// QuotientRounded returns the integer part of f under the given rounding mode.
func (f Fraction) QuotientRounded(r Rounding) *big.Int {
	return roundQuo(f.numerator(), f.denominator(), r)
}

// Remainder returns (num mod den)/den, with the sign of the numerator.
func (f Fraction) Remainder() Fraction {
	return New(new(big.Int).Rem(f.numerator(), f.denominator()), f.denominator())
}

// Invert returns den/num. Panics with ErrZeroDenominator if f is zero.
func (f Fraction) Invert() Fraction {
	return New(f.denominator(), f.numerator())
}

// -----------------------------------------------------------------------------
// Arithmetic
// -----------------------------------------------------------------------------

func (f Fraction) Add(o Fraction) Fraction {
	if f.denominator().Cmp(o.denominator()) == 0 {
		return New(new(big.Int).Add(f.numerator(), o.numerator()), f.denominator())
	}
	num := new(big.Int).Add(
		new(big.Int).Mul(f.numerator(), o.denominator()),
		new(big.Int).Mul(o.numerator(), f.denominator()),
	)
	return New(num, new(big.Int).Mul(f.denominator(), o.denominator()))
}

func (f Fraction) Sub(o Fraction) Fraction {
	if f.denominator().Cmp(o.denominator()) == 0 {
		return New(new(big.Int).Sub(f.numerator(), o.numerator()), f.denominator())
	}
	num := new(big.Int).Sub(
		new(big.Int).Mul(f.numerator(), o.denominator()),
		new(big.Int).Mul(o.numerator(), f.denominator()),
	)
	return New(num, new(big.Int).Mul(f.denominator(), o.denominator()))
}

func (f Fraction) Mul(o Fraction) Fraction {
	return New(
		new(big.Int).Mul(f.numerator(), o.numerator()),
		new(big.Int).Mul(f.denominator(), o.denominator()),
	)
}

// Div panics with ErrZeroDenominator when o is zero.
func (f Fraction) Div(o Fraction) Fraction {
	return New(
		new(big.Int).Mul(f.numerator(), o.denominator()),
		new(big.Int).Mul(f.denominator(), o.numerator()),
	)
}

// MulInt multiplies by an integer.
func (f Fraction) MulInt(n *big.Int) Fraction {
	return New(new(big.Int).Mul(f.numerator(), n), f.denominator())
}

// -----------------------------------------------------------------------------
// Comparison
// -----------------------------------------------------------------------------

// Cmp compares by value: -1 if f < o, 0 if equal, +1 if f > o.
func (f Fraction) Cmp(o Fraction) int {
	l := new(big.Int).Mul(f.numerator(), o.denominator())
	r := new(big.Int).Mul(o.numerator(), f.denominator())
	c := l.Cmp(r)
	// cross-multiplying flips the result when exactly one denominator is negative
	if f.denominator().Sign()*o.denominator().Sign() < 0 {
		c = -c
	}
	return c
}

func (f Fraction) LessThan(o Fraction) bool    { return f.Cmp(o) < 0 }
func (f Fraction) EqualTo(o Fraction) bool     { return f.Cmp(o) == 0 }
func (f Fraction) GreaterThan(o Fraction) bool { return f.Cmp(o) > 0 }

// Reduce divides numerator and denominator by their GCD and moves the sign
// to the numerator.
func (f Fraction) Reduce() Fraction {
	num, den := f.Numerator(), f.Denominator()
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if num.Sign() == 0 {
		return New(zero, one)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	return New(num.Quo(num, g), den.Quo(den, g))
}

// String returns "num/den".
func (f Fraction) String() string {
	return f.numerator().String() + "/" + f.denominator().String()
}

// numerator and denominator make the zero value behave as 0/1.
func (f Fraction) numerator() *big.Int {
	if f.num == nil {
		return zero
	}
	return f.num
}

func (f Fraction) denominator() *big.Int {
	if f.den == nil {
		return one
	}
	return f.den
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}
