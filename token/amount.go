package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Amount is the unsigned quantity type for balances, allowances, and
// supply. It is a 256-bit integer; all arithmetic performed on it by
// this package is checked, never wrapping.
type Amount = uint256.Int

// NewAmount returns an Amount holding v.
func NewAmount(v uint64) Amount {
	return *uint256.NewInt(v)
}

// ParseAmount parses a decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	a, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("token: parse amount %q: %w", s, err)
	}
	return *a, nil
}

// MaxAmount returns the largest representable Amount.
func MaxAmount() Amount {
	var a Amount
	a.SetAllOne()
	return a
}

// addChecked returns a+b, or ErrOverflow if the sum does not fit.
func addChecked(a, b *Amount) (Amount, error) {
	var sum Amount
	if _, overflow := sum.AddOverflow(a, b); overflow {
		return Amount{}, ErrOverflow
	}
	return sum, nil
}

// subChecked returns a-b, or ErrOverflow if b exceeds a.
func subChecked(a, b *Amount) (Amount, error) {
	var diff Amount
	if _, underflow := diff.SubOverflow(a, b); underflow {
		return Amount{}, ErrOverflow
	}
	return diff, nil
}
