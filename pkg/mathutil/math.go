package mathutil

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow is returned when an operation does not fit into an uint64.
	ErrOverflow = errors.New("numerical overflow")
	// ErrNegative is returned when an operation would result in a negative
	// amount.
	ErrNegative = errors.New("amount must not be negative")
)

//Add takes two uint64 numbers and sum them x + y and returns the result as decimal.Decimal
func Add(x, y uint64) (z decimal.Decimal) {
	z = toDecimal(x).Add(toDecimal(y))
	return
}

// Mul takes two uint64 numbers and multiply them x * y and returns the result as decimal.Decimal
func Mul(x, y uint64) (z decimal.Decimal) {
	z = toDecimal(x).Mul(toDecimal(y))
	return
}

// SafeAdd returns x + y or ErrOverflow.
func SafeAdd(x, y uint64) (uint64, error) {
	return ToUint64(Add(x, y))
}

// SaturatingSub returns x - y, or 0 if y > x.
func SaturatingSub(x, y uint64) uint64 {
	if y > x {
		return 0
	}
	return x - y
}

// ToUint64 converts an integral decimal to uint64, failing if the value is
// negative or does not fit.
func ToUint64(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() {
		return 0, ErrNegative
	}
	n := d.BigInt()
	if !n.IsUint64() {
		return 0, ErrOverflow
	}
	return n.Uint64(), nil
}

// ToUnits parses a human readable amount (ie. "1.5") into base units given
// the asset precision.
func ToUnits(amount string, precision int32) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, err
	}
	units := d.Shift(precision)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.New("amount has too many decimal places")
	}
	return ToUint64(units)
}

// FromUnits formats base units as a human readable amount.
func FromUnits(units uint64, precision int32) string {
	return toDecimal(units).Shift(-precision).String()
}

func toDecimal(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}
