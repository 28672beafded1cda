package fraction_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/fd1az/pairquote/internal/fraction"
)

func TestFraction_Quotient(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		rounding fraction.Rounding
		want     int64
	}{
		{"down_truncates", 5, 2, fraction.RoundDown, 2},
		{"half_up_rounds_tie_away", 5, 2, fraction.RoundHalfUp, 3},
		{"up_rounds_away", 7, 3, fraction.RoundUp, 3},
		{"half_up_below_half", 7, 3, fraction.RoundHalfUp, 2},
		{"exact_ignores_mode", 6, 3, fraction.RoundUp, 2},
		{"negative_down_toward_zero", -5, 2, fraction.RoundDown, -2},
		{"negative_half_up", -5, 2, fraction.RoundHalfUp, -3},
		{"negative_up", -7, 3, fraction.RoundUp, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fraction.NewFromInt64(tt.num, tt.den)
			got := f.QuotientRounded(tt.rounding)
			if got.Int64() != tt.want {
				t.Errorf("QuotientRounded(%s) = %s, want %d", tt.rounding, got, tt.want)
			}
		})
	}

	if got := fraction.NewFromInt64(-5, 2).Quotient(); got.Int64() != -2 {
		t.Errorf("Quotient() = %s, want -2", got)
	}
}

func TestFraction_Remainder(t *testing.T) {
	r := fraction.NewFromInt64(7, 2).Remainder()
	if r.String() != "1/2" {
		t.Errorf("expected 1/2, got %s", r)
	}
}

func TestFraction_Arithmetic(t *testing.T) {
	half := fraction.NewFromInt64(1, 2)
	third := fraction.NewFromInt64(1, 3)
	quarter := fraction.NewFromInt64(1, 4)

	tests := []struct {
		name string
		got  fraction.Fraction
		want string
	}{
		{"add_different_denominators", half.Add(third), "5/6"},
		{"add_same_denominator_not_reduced", quarter.Add(quarter), "2/4"},
		{"sub", half.Sub(third), "1/6"},
		{"mul", fraction.NewFromInt64(2, 3).Mul(fraction.NewFromInt64(3, 4)), "6/12"},
		{"div", half.Div(quarter), "4/2"},
		{"invert", third.Invert(), "3/1"},
		{"mul_int", third.MulInt(big.NewInt(6)), "6/3"},
		{"reduce", fraction.NewFromInt64(6, 12).Reduce(), "1/2"},
		{"reduce_moves_sign", fraction.NewFromInt64(4, -8).Reduce(), "-1/2"},
		{"reduce_zero", fraction.NewFromInt64(0, 7).Reduce(), "0/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestFraction_Compare(t *testing.T) {
	third := fraction.NewFromInt64(1, 3)
	half := fraction.NewFromInt64(1, 2)

	if !third.LessThan(half) {
		t.Error("expected 1/3 < 1/2")
	}
	if !half.GreaterThan(third) {
		t.Error("expected 1/2 > 1/3")
	}
	if !fraction.NewFromInt64(6, 12).EqualTo(half) {
		t.Error("expected 6/12 == 1/2")
	}
	if fraction.NewFromInt64(1, -2).Cmp(fraction.NewFromInt64(-1, 2)) != 0 {
		t.Error("expected 1/-2 == -1/2")
	}
	if fraction.NewFromInt64(1, -2).Cmp(third) >= 0 {
		t.Error("expected 1/-2 < 1/3")
	}
}

func TestFraction_ZeroValueIsZero(t *testing.T) {
	var f fraction.Fraction
	if !f.IsZero() {
		t.Error("expected zero value to be zero")
	}
	if f.String() != "0/1" {
		t.Errorf("expected 0/1, got %s", f)
	}
}

func TestFraction_ZeroDenominatorPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"new", func() { fraction.NewFromInt64(1, 0) }},
		{"invert_zero", func() { fraction.NewFromInt64(0, 5).Invert() }},
		{"divide_by_zero", func() { fraction.NewFromInt64(1, 2).Div(fraction.NewFromInt64(0, 1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, fraction.ErrZeroDenominator) {
					t.Errorf("expected ErrZeroDenominator panic, got %v", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestFraction_ToSignificant(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		sig      int
		rounding fraction.Rounding
		want     string
	}{
		{"trims_trailing_zeros", 101, 100, 6, fraction.RoundHalfUp, "1.01"},
		{"repeating_half_up", 2, 3, 3, fraction.RoundHalfUp, "0.667"},
		{"repeating_down", 2, 3, 3, fraction.RoundDown, "0.666"},
		{"up", 1, 3, 1, fraction.RoundUp, "0.4"},
		{"carry_into_new_digit", 999999, 1000000, 2, fraction.RoundHalfUp, "1"},
		{"no_carry_when_down", 999999, 1000000, 2, fraction.RoundDown, "0.99"},
		{"large_integer", 123456789, 1, 3, fraction.RoundDown, "123000000"},
		{"integer_exact", 1000, 1, 2, fraction.RoundHalfUp, "1000"},
		{"tiny", 1, 100000, 3, fraction.RoundHalfUp, "0.00001"},
		{"negative", -2, 3, 3, fraction.RoundHalfUp, "-0.667"},
		{"zero", 0, 3, 4, fraction.RoundHalfUp, "0"},
		{"inverse_price", 100, 101, 6, fraction.RoundHalfUp, "0.990099"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fraction.NewFromInt64(tt.num, tt.den).ToSignificant(tt.sig, tt.rounding)
			if got != tt.want {
				t.Errorf("ToSignificant(%d, %s) = %q, want %q", tt.sig, tt.rounding, got, tt.want)
			}
		})
	}
}

func TestFraction_ToFixed(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		places   int
		rounding fraction.Rounding
		want     string
	}{
		{"pads", 101, 100, 4, fraction.RoundDown, "1.0100"},
		{"down", 2, 3, 2, fraction.RoundDown, "0.66"},
		{"half_up", 2, 3, 2, fraction.RoundHalfUp, "0.67"},
		{"zero_places", 5, 2, 0, fraction.RoundHalfUp, "3"},
		{"inverse_price", 100, 101, 4, fraction.RoundHalfUp, "0.9901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fraction.NewFromInt64(tt.num, tt.den).ToFixed(tt.places, tt.rounding)
			if got != tt.want {
				t.Errorf("ToFixed(%d, %s) = %q, want %q", tt.places, tt.rounding, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"ratio", "3/4", "3/4", nil},
		{"integer", "42", "42/1", nil},
		{"decimal", "1.25", "125/100", nil},
		{"zero_denominator", "1/0", "", fraction.ErrZeroDenominator},
		{"garbage", "abc", "", fraction.ErrInvalidFraction},
		{"bad_ratio", "1/x", "", fraction.ErrInvalidFraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fraction.Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	// 1.1 / 10.1 = 11/101
	p := fraction.NewPercent(big.NewInt(11), big.NewInt(101))

	if got := p.ToSignificant(4, fraction.RoundHalfUp); got != "10.89" {
		t.Errorf("ToSignificant = %q, want 10.89", got)
	}
	if got := p.ToFixed(2, fraction.RoundHalfUp); got != "10.89" {
		t.Errorf("ToFixed = %q, want 10.89", got)
	}
	if got := p.BasisPoints(); got.Int64() != 1089 {
		t.Errorf("BasisPoints = %s, want 1089", got)
	}
	if p.String() != "10.89%" {
		t.Errorf("String = %q", p.String())
	}
}
