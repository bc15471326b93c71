package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Fee is the swap fee as a fraction taken from the input amount.
type Fee struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// NewFee creates a Fee of numerator/denominator.
func NewFee(numerator, denominator uint64) Fee {
	return Fee{Numerator: numerator, Denominator: denominator}
}

// DefaultFee returns the 0.3% fee.
func DefaultFee() Fee {
	return NewFee(3, 1000)
}

// Validate requires a positive denominator and a fee strictly below 100%.
func (f Fee) Validate() error {
	if f.Denominator == 0 {
		return ErrInvalidFee.Wrap("fee denominator cannot be zero")
	}
	if f.Numerator >= f.Denominator {
		return ErrInvalidFee.Wrapf("fee %s must be below 100%%", f)
	}
	return nil
}

// DenominatorInt returns the denominator as a math.Int.
func (f Fee) DenominatorInt() math.Int {
	return math.NewIntFromUint64(f.Denominator)
}

// RetainedInt returns denominator - numerator, the share of input that reaches the curve.
func (f Fee) RetainedInt() math.Int {
	return math.NewIntFromUint64(f.Denominator - f.Numerator)
}

func (f Fee) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}
