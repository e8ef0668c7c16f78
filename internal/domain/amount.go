package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxScale is the largest number of fractional digits a ScaledAmount may carry
const MaxScale uint32 = 28

var (
	// MaxMantissa is the largest mantissa representable in a signed 128-bit integer
	MaxMantissa = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	// MinMantissa is the smallest mantissa representable in a signed 128-bit integer
	MinMantissa = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// ScaledAmount represents an exact decimal value as mantissa × 10^(-scale)
// The mantissa and scale are the only source of truth; no float is involved.
// A ScaledAmount is immutable: accessors hand out copies.
type ScaledAmount struct {
	mantissa *big.Int
	scale    uint32
}

// NewScaledAmount creates a ScaledAmount from a mantissa and a scale
// Returns ErrUnsupportedScale if scale exceeds MaxScale and
// ErrArithmeticOverflow if the mantissa does not fit in 128 bits.
func NewScaledAmount(mantissa *big.Int, scale uint32) (ScaledAmount, error) {
	if mantissa == nil {
		mantissa = new(big.Int)
	}

	if err := CheckScale(scale); err != nil {
		return ScaledAmount{}, err
	}

	if err := CheckMantissa(mantissa); err != nil {
		return ScaledAmount{}, err
	}

	return ScaledAmount{mantissa: new(big.Int).Set(mantissa), scale: scale}, nil
}

// NewScaledAmountFromInt64 is a convenience wrapper around NewScaledAmount
func NewScaledAmountFromInt64(mantissa int64, scale uint32) (ScaledAmount, error) {
	return NewScaledAmount(big.NewInt(mantissa), scale)
}

// MustNewScaledAmount is like NewScaledAmountFromInt64 but panics on error
// Intended for tests and static values.
func MustNewScaledAmount(mantissa int64, scale uint32) ScaledAmount {
	a, err := NewScaledAmountFromInt64(mantissa, scale)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseScaledAmount parses a decimal string such as "100.01"
// The scale of the result is the number of fractional digits in the input.
func ParseScaledAmount(s string) (ScaledAmount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ScaledAmount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewScaledAmountFromDecimal(d)
}

// NewScaledAmountFromDecimal converts a decimal.Decimal without changing its value
// Positive exponents are folded into the mantissa so the scale is never negative.
func NewScaledAmountFromDecimal(d decimal.Decimal) (ScaledAmount, error) {
	coef := d.Coefficient()
	exp := d.Exponent()
	if exp > 0 {
		coef.Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		exp = 0
	}
	return NewScaledAmount(coef, uint32(-exp))
}

// CheckScale returns ErrUnsupportedScale if scale cannot be represented
func CheckScale(scale uint32) error {
	if scale > MaxScale {
		return fmt.Errorf("%w: %d exceeds maximum of %d", ErrUnsupportedScale, scale, MaxScale)
	}
	return nil
}

// CheckMantissa returns ErrArithmeticOverflow if m is outside the 128-bit range
func CheckMantissa(m *big.Int) error {
	if m.Cmp(MaxMantissa) > 0 || m.Cmp(MinMantissa) < 0 {
		return fmt.Errorf("%w: %s", ErrArithmeticOverflow, m.String())
	}
	return nil
}

// Mantissa returns a copy of the raw integer value in minimal units
func (a ScaledAmount) Mantissa() *big.Int {
	if a.mantissa == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.mantissa)
}

// Scale returns the number of fractional digits
func (a ScaledAmount) Scale() uint32 {
	return a.scale
}

// Sign returns -1, 0 or +1 depending on the sign of the mantissa
func (a ScaledAmount) Sign() int {
	if a.mantissa == nil {
		return 0
	}
	return a.mantissa.Sign()
}

// IsZero reports whether the mantissa is zero
func (a ScaledAmount) IsZero() bool {
	return a.Sign() == 0
}

// Cmp compares mantissas only, so both amounts must share a scale for the result to be meaningful
func (a ScaledAmount) Cmp(b ScaledAmount) int {
	return a.Mantissa().Cmp(b.Mantissa())
}

// Equal reports whether both mantissa and scale are identical
func (a ScaledAmount) Equal(b ScaledAmount) bool {
	return a.scale == b.scale && a.Cmp(b) == 0
}

// Decimal returns the value as a decimal.Decimal with the same scale
func (a ScaledAmount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.Mantissa(), -int32(a.scale))
}

// String renders the value with exactly Scale fractional digits
func (a ScaledAmount) String() string {
	return a.Decimal().StringFixed(int32(a.scale))
}

// MinimalUnits returns the raw mantissa of an amount, ignoring its scale
func MinimalUnits(a ScaledAmount) *big.Int {
	return a.Mantissa()
}
