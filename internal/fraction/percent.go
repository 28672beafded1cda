package fraction

import "math/big"

var hundred = big.NewInt(100)

// Percent is a fraction whose display form is scaled by 100.
type Percent struct {
	Fraction
}

func NewPercent(num, den *big.Int) Percent {
	return Percent{New(num, den)}
}

// PercentOf wraps an existing fraction.
func PercentOf(f Fraction) Percent {
	return Percent{f}
}

func (p Percent) ToSignificant(sig int, r Rounding) string {
	return p.Fraction.MulInt(hundred).ToSignificant(sig, r)
}

func (p Percent) ToFixed(places int, r Rounding) string {
	return p.Fraction.MulInt(hundred).ToFixed(places, r)
}

// BasisPoints returns the value in bps, truncated.
func (p Percent) BasisPoints() *big.Int {
	return p.Fraction.MulInt(big.NewInt(10_000)).Quotient()
}

func (p Percent) String() string {
	return p.ToSignificant(4, RoundHalfUp) + "%"
}
