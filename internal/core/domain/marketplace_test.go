package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

var (
	authority    = address.MustFromString("7qbRF6YsyGuLUVs6Y1q64bdVrfe4ZcUUz1JRdoVNUJnm")
	treasuryMint = address.MustFromString("So11111111111111111111111111111111111111112")
	someAddress  = address.MustFromString("9sCGJFSVb7zyXfozXXiVyemaaNtbHVEiRy81HmQzGWG9")
	otherAddress = address.MustFromString("FYUpechM9AEW579boyznhD7vq3xumeC3BstW4PB1qGEp")
)

func newTestMarketplace(t *testing.T, feeBps uint16) *domain.Marketplace {
	m, err := domain.NewMarketplace(
		domain.MarketplaceArgs{
			Authority:                     authority,
			TreasuryMint:                  treasuryMint,
			FeeWithdrawalDestination:      authority,
			TreasuryWithdrawalDestination: authority,
			FeeBasisPoints:                feeBps,
		},
		someAddress, 255, otherAddress, 254, otherAddress, 253,
	)
	require.NoError(t, err)
	return m
}

func TestNewMarketplace(t *testing.T) {
	t.Parallel()

	m := newTestMarketplace(t, 100)
	require.Equal(t, authority, m.Authority)
	require.Equal(t, authority, m.Creator)
	require.False(t, m.HasAuctioneer)
	require.Nil(t, m.AuctioneerAddress)
	require.Equal(t, uint64(20_000_000), m.Fee(2_000_000_000))

	_, err := domain.NewMarketplace(
		domain.MarketplaceArgs{FeeBasisPoints: 10001},
		someAddress, 255, otherAddress, 254, otherAddress, 253,
	)
	require.ErrorIs(t, err, domain.ErrInvalidBasisPoints)
}

func TestMarketplaceUpdate(t *testing.T) {
	t.Parallel()

	m := newTestMarketplace(t, 100)

	fee := uint16(250)
	canChange := true
	require.NoError(t, m.Update(domain.MarketplaceUpdate{
		FeeBasisPoints:     &fee,
		CanChangeSalePrice: &canChange,
		NewAuthority:       &otherAddress,
	}))
	require.Equal(t, fee, m.FeeBasisPoints)
	require.True(t, m.CanChangeSalePrice)
	require.True(t, m.IsAuthority(otherAddress))
	require.Equal(t, authority, m.Creator)

	tooHigh := uint16(10001)
	err := m.Update(domain.MarketplaceUpdate{FeeBasisPoints: &tooHigh})
	require.ErrorIs(t, err, domain.ErrInvalidBasisPoints)
	require.Equal(t, fee, m.FeeBasisPoints)
}

func TestMarketplaceSetAuctioneer(t *testing.T) {
	t.Parallel()

	m := newTestMarketplace(t, 0)

	m.SetAuctioneer(someAddress)
	require.True(t, m.IsDelegatedTo(someAddress))

	m.SetAuctioneer(otherAddress)
	require.True(t, m.HasAuctioneer)
	require.False(t, m.IsDelegatedTo(someAddress))
	require.True(t, m.IsDelegatedTo(otherAddress))
}
