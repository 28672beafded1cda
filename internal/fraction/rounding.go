package fraction

import (
	"fmt"
	"math/big"
)

// Rounding selects how a fraction becomes an integer.
type Rounding int

const (
	// RoundDown truncates toward zero, like on-chain integer division.
	RoundDown Rounding = iota
	// RoundHalfUp rounds to nearest, ties away from zero.
	RoundHalfUp
	// RoundUp rounds away from zero.
	RoundUp
)

func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "ROUND_DOWN"
	case RoundHalfUp:
		return "ROUND_HALF_UP"
	case RoundUp:
		return "ROUND_UP"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// roundQuo divides num by den on magnitudes and reapplies the sign, so every
// mode is symmetric around zero.
func roundQuo(num, den *big.Int, r Rounding) *big.Int {
	neg := num.Sign()*den.Sign() < 0
	a := new(big.Int).Abs(num)
	b := new(big.Int).Abs(den)

	q, rem := new(big.Int).QuoRem(a, b, new(big.Int))
	if rem.Sign() != 0 {
		switch r {
		case RoundDown:
		case RoundUp:
			q.Add(q, one)
		case RoundHalfUp:
			if new(big.Int).Lsh(rem, 1).Cmp(b) >= 0 {
				q.Add(q, one)
			}
		default:
			panic(fmt.Sprintf("fraction: unknown rounding mode %d", int(r)))
		}
	}

	if neg {
		q.Neg(q)
	}
	return q
}
