package address_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/pkg/address"
	"pgregory.net/rapid"
)

var (
	namespaces = address.Namespaces{
		AuctionHouse: address.MustFromString("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"),
		Auctioneer:   address.MustFromString("neer8g6yJq2mQM6KbnViEDAD4gr3gRZyMMf4F2p3MEh"),
		Token:        address.MustFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
		Metadata:     address.MustFromString("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"),
	}
)

func TestFindProgramAddress(t *testing.T) {
	t.Parallel()

	seeds := [][]byte{[]byte("auction_house"), bytes.Repeat([]byte{1}, 32)}

	addr, bump, err := address.FindProgramAddress(seeds, namespaces.AuctionHouse)
	require.NoError(t, err)
	require.False(t, address.IsOnCurve(addr[:]))
	require.True(t, address.VerifyProgramAddress(addr, seeds, bump, namespaces.AuctionHouse))

	again, againBump, err := address.FindProgramAddress(seeds, namespaces.AuctionHouse)
	require.NoError(t, err)
	require.Equal(t, addr, again)
	require.Equal(t, bump, againBump)

	other, _, err := address.FindProgramAddress(seeds, namespaces.Auctioneer)
	require.NoError(t, err)
	require.NotEqual(t, addr, other)
}

func TestFindProgramAddressInvalidSeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		seeds         [][]byte
		expectedError error
	}{
		{
			name:          "seed_too_long",
			seeds:         [][]byte{make([]byte, address.MaxSeedLength+1)},
			expectedError: address.ErrMaxSeedLengthExceeded,
		},
		{
			name:          "too_many_seeds",
			seeds:         make([][]byte, address.MaxSeeds),
			expectedError: address.ErrTooManySeeds,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := address.FindProgramAddress(tt.seeds, namespaces.AuctionHouse)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestKeypair(t *testing.T) {
	t.Parallel()

	kp, err := address.NewKeypair()
	require.NoError(t, err)
	require.True(t, address.IsOnCurve(kp.Address().Bytes()))

	msg := []byte("sell")
	sig := kp.Sign(msg)
	require.True(t, address.Verify(kp.Address(), msg, sig))
	require.False(t, address.Verify(kp.Address(), []byte("buy"), sig))

	seed := bytes.Repeat([]byte{7}, 32)
	kp1, err := address.KeypairFromSeed(seed)
	require.NoError(t, err)
	kp2, err := address.KeypairFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, kp1.Address(), kp2.Address())

	_, err = address.KeypairFromSeed(seed[:10])
	require.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	addr := namespaces.Token
	buf, err := json.Marshal(addr)
	require.NoError(t, err)
	require.Equal(t, `"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"`, string(buf))

	var decoded address.Address
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Equal(t, addr, decoded)

	_, err = address.FromString("not-an-address")
	require.ErrorIs(t, err, address.ErrInvalidAddress)
}

func TestPriceSeed(t *testing.T) {
	t.Parallel()

	_, err := address.FixedPrice(math.MaxUint64)
	require.ErrorIs(t, err, address.ErrReservedPrice)

	free, err := address.FixedPrice(0)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 8), free.Bytes())
	require.Equal(t, bytes.Repeat([]byte{0xff}, 8), address.Unbound().Bytes())
}

func TestCachedDeriver(t *testing.T) {
	t.Parallel()

	cached := address.NewDeriver(namespaces, time.Minute)
	plain := address.NewDeriver(namespaces, 0)

	authority, _ := address.NewKeypair()
	mint, _ := address.NewKeypair()

	for i := 0; i < 2; i++ {
		a1, b1 := cached.Marketplace(authority.Address(), mint.Address())
		a2, b2 := plain.Marketplace(authority.Address(), mint.Address())
		require.Equal(t, a2, a1)
		require.Equal(t, b2, b1)
	}
}

func drawAddress(t *rapid.T, label string) address.Address {
	buf := rapid.SliceOfN(rapid.Byte(), address.Size, address.Size).Draw(t, label).([]byte)
	addr, _ := address.FromBytes(buf)
	return addr
}

func TestTradeStateDerivationIsPure(t *testing.T) {
	d := address.NewDeriver(namespaces, 0)

	rapid.Check(t, func(t *rapid.T) {
		wallet := drawAddress(t, "wallet")
		marketplace := drawAddress(t, "marketplace")
		tokenAccount := drawAddress(t, "tokenAccount")
		treasuryMint := drawAddress(t, "treasuryMint")
		mint := drawAddress(t, "mint")
		price, err := address.FixedPrice(
			rapid.Uint64Range(0, math.MaxUint64-1).Draw(t, "price").(uint64),
		)
		if err != nil {
			t.Fatal(err)
		}
		quantity := rapid.Uint64().Draw(t, "quantity").(uint64)

		a1, b1 := d.TradeState(wallet, marketplace, tokenAccount, treasuryMint, mint, price, quantity)
		a2, b2 := d.TradeState(wallet, marketplace, tokenAccount, treasuryMint, mint, price, quantity)
		if a1 != a2 || b1 != b2 {
			t.Fatalf("derivation is not deterministic")
		}
		if address.IsOnCurve(a1[:]) {
			t.Fatalf("derived address %s is on curve", a1)
		}
	})
}

func TestUnboundNeverCollidesWithRealPrice(t *testing.T) {
	d := address.NewDeriver(namespaces, 0)

	rapid.Check(t, func(t *rapid.T) {
		wallet := drawAddress(t, "wallet")
		marketplace := drawAddress(t, "marketplace")
		tokenAccount := drawAddress(t, "tokenAccount")
		treasuryMint := drawAddress(t, "treasuryMint")
		mint := drawAddress(t, "mint")
		quantity := rapid.Uint64Range(1, 1000).Draw(t, "quantity").(uint64)
		price, _ := address.FixedPrice(
			rapid.Uint64Range(0, math.MaxUint64-1).Draw(t, "price").(uint64),
		)

		sell, _ := d.TradeState(
			wallet, marketplace, tokenAccount, treasuryMint, mint, address.Unbound(), quantity,
		)
		buy, _ := d.TradeState(
			wallet, marketplace, tokenAccount, treasuryMint, mint, price, quantity,
		)
		if sell == buy {
			t.Fatalf("unbound listing collides with bid at price %d", price.Amount)
		}
	})
}
