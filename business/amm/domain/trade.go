package domain

import (
	"fmt"
	"strings"
)

// TradeType says which side of a swap is fixed.
type TradeType int

const (
	ExactInput TradeType = iota
	ExactOutput
)

func (t TradeType) String() string {
	switch t {
	case ExactInput:
		return "EXACT_INPUT"
	case ExactOutput:
		return "EXACT_OUTPUT"
	default:
		return fmt.Sprintf("TradeType(%d)", int(t))
	}
}

// ParseTradeType accepts "exact_input"/"exact_output" in any case, with
// dashes or underscores, or the short forms "in"/"out".
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "exact_input", "in":
		return ExactInput, nil
	case "exact_output", "out":
		return ExactOutput, nil
	}
	return 0, fmt.Errorf("amm: unknown trade type %q", s)
}
