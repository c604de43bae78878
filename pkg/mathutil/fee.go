package mathutil

import (
	"errors"
)

const (
	// TenThousands is the basis points denominator.
	TenThousands = uint64(10000)
	// OneHundred is the denominator of royalty shares.
	OneHundred = uint64(100)
)

// ErrInvalidShares is returned when shares do not sum up to OneHundred.
var ErrInvalidShares = errors.New("shares must sum up to 100")

// FeeAmount returns amount * feeAsBasisPoint / 10000, rounded down. The
// intermediate product is computed without overflow.
func FeeAmount(amount, feeAsBasisPoint uint64) uint64 {
	fee := Mul(amount, feeAsBasisPoint).Div(toDecimal(TenThousands)).Floor()
	return fee.BigInt().Uint64()
}

// SplitByShares splits pool pro-rata among the given shares, each rounded
// down. The returned remainder is what is left undistributed.
func SplitByShares(pool uint64, shares []uint8) (parts []uint64, remainder uint64, err error) {
	total := uint64(0)
	for _, s := range shares {
		total += uint64(s)
	}
	if total != OneHundred {
		return nil, 0, ErrInvalidShares
	}

	parts = make([]uint64, 0, len(shares))
	remainder = pool
	for _, s := range shares {
		part := Mul(pool, uint64(s)).Div(toDecimal(OneHundred)).Floor().BigInt().Uint64()
		parts = append(parts, part)
		remainder -= part
	}
	return parts, remainder, nil
}
