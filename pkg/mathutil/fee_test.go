package mathutil_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/pkg/mathutil"
	"pgregory.net/rapid"
)

func TestFeeAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount uint64
		bps    uint64
		want   uint64
	}{
		{"one_percent_of_two_sol", 2_000_000_000, 100, 20_000_000},
		{"zero_fee", 2_000_000_000, 0, 0},
		{"full_fee", 1234, 10000, 1234},
		{"rounds_down", 99, 100, 0},
		{"no_overflow", math.MaxUint64, 10000, math.MaxUint64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, mathutil.FeeAmount(tt.amount, tt.bps))
		})
	}
}

func TestSplitByShares(t *testing.T) {
	t.Parallel()

	parts, remainder, err := mathutil.SplitByShares(1_980_000_000, []uint8{50, 50})
	require.NoError(t, err)
	require.Equal(t, []uint64{990_000_000, 990_000_000}, parts)
	require.Zero(t, remainder)

	parts, remainder, err = mathutil.SplitByShares(100, []uint8{33, 33, 34})
	require.NoError(t, err)
	require.Equal(t, []uint64{33, 33, 34}, parts)
	require.Zero(t, remainder)

	parts, remainder, err = mathutil.SplitByShares(10, []uint8{33, 33, 34})
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 3, 3}, parts)
	require.Equal(t, uint64(1), remainder)

	_, _, err = mathutil.SplitByShares(100, []uint8{50, 49})
	require.ErrorIs(t, err, mathutil.ErrInvalidShares)
}

func TestSplitBySharesConservesPool(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := rapid.Uint64().Draw(t, "pool").(uint64)
		first := rapid.Uint8Range(0, 100).Draw(t, "first").(uint8)
		second := rapid.Uint8Range(0, 100-first).Draw(t, "second").(uint8)
		shares := []uint8{first, second, 100 - first - second}

		parts, remainder, err := mathutil.SplitByShares(pool, shares)
		if err != nil {
			t.Fatal(err)
		}
		sum := remainder
		for _, p := range parts {
			sum += p
		}
		if sum != pool {
			t.Fatalf("split of %d does not add up: got %d", pool, sum)
		}
		if remainder >= uint64(len(shares)) && pool > 0 {
			t.Fatalf("remainder %d too large for %d shares", remainder, len(shares))
		}
	})
}

func TestToUnits(t *testing.T) {
	t.Parallel()

	units, err := mathutil.ToUnits("1.98", 9)
	require.NoError(t, err)
	require.Equal(t, uint64(1_980_000_000), units)

	_, err = mathutil.ToUnits("0.0000000001", 9)
	require.Error(t, err)

	_, err = mathutil.ToUnits("-1", 9)
	require.ErrorIs(t, err, mathutil.ErrNegative)

	require.Equal(t, "0.02", mathutil.FromUnits(20_000_000, 9))
}
