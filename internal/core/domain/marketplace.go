package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

// MaxBasisPoints is the upper bound of any fee expressed in basis points.
const MaxBasisPoints = 10000

// Marketplace is the venue under which listings and bids are created. Its
// address is derived from the creator and the settlement currency so that it
// does not change when the authority is transferred.
type Marketplace struct {
	Address address.Address
	Bump    uint8
	// Principal allowed to administer the marketplace.
	Authority address.Address
	Creator   address.Address
	// Mint of the currency bids are paid with.
	TreasuryMint                  address.Address
	FeeAccount                    address.Address
	FeeAccountBump                uint8
	TreasuryAccount               address.Address
	TreasuryBump                  uint8
	FeeWithdrawalDestination      address.Address
	TreasuryWithdrawalDestination address.Address
	FeeBasisPoints                uint16
	CanChangeSalePrice            bool
	HasAuctioneer                 bool
	AuctioneerAddress             *address.Address
}

// MarketplaceArgs are the settings of a new marketplace.
type MarketplaceArgs struct {
	Authority                     address.Address
	TreasuryMint                  address.Address
	FeeWithdrawalDestination      address.Address
	TreasuryWithdrawalDestination address.Address
	FeeBasisPoints                uint16
	CanChangeSalePrice            bool
}

// NewMarketplace returns a marketplace at the given derived addresses.
func NewMarketplace(
	args MarketplaceArgs,
	addr address.Address, bump uint8,
	feeAccount address.Address, feeAccountBump uint8,
	treasury address.Address, treasuryBump uint8,
) (*Marketplace, error) {
	if args.FeeBasisPoints > MaxBasisPoints {
		return nil, ErrInvalidBasisPoints
	}

	return &Marketplace{
		Address:                       addr,
		Bump:                          bump,
		Authority:                     args.Authority,
		Creator:                       args.Authority,
		TreasuryMint:                  args.TreasuryMint,
		FeeAccount:                    feeAccount,
		FeeAccountBump:                feeAccountBump,
		TreasuryAccount:               treasury,
		TreasuryBump:                  treasuryBump,
		FeeWithdrawalDestination:      args.FeeWithdrawalDestination,
		TreasuryWithdrawalDestination: args.TreasuryWithdrawalDestination,
		FeeBasisPoints:                args.FeeBasisPoints,
		CanChangeSalePrice:            args.CanChangeSalePrice,
	}, nil
}

// MarketplaceUpdate holds the optional changes applied by Update.
type MarketplaceUpdate struct {
	FeeBasisPoints                *uint16
	CanChangeSalePrice            *bool
	NewAuthority                  *address.Address
	FeeWithdrawalDestination      *address.Address
	TreasuryWithdrawalDestination *address.Address
}

func (m *Marketplace) IsAuthority(signer address.Address) bool {
	return m.Authority == signer
}

// Update applies the non-nil fields of the given update.
func (m *Marketplace) Update(u MarketplaceUpdate) error {
	if u.FeeBasisPoints != nil {
		if *u.FeeBasisPoints > MaxBasisPoints {
			return ErrInvalidBasisPoints
		}
		m.FeeBasisPoints = *u.FeeBasisPoints
	}
	if u.CanChangeSalePrice != nil {
		m.CanChangeSalePrice = *u.CanChangeSalePrice
	}
	if u.NewAuthority != nil {
		m.Authority = *u.NewAuthority
	}
	if u.FeeWithdrawalDestination != nil {
		m.FeeWithdrawalDestination = *u.FeeWithdrawalDestination
	}
	if u.TreasuryWithdrawalDestination != nil {
		m.TreasuryWithdrawalDestination = *u.TreasuryWithdrawalDestination
	}
	return nil
}

// SetAuctioneer replaces the current delegate, if any.
func (m *Marketplace) SetAuctioneer(delegation address.Address) {
	addr := delegation
	m.HasAuctioneer = true
	m.AuctioneerAddress = &addr
}

// IsDelegatedTo reports whether the given delegation record is the current
// auctioneer of the marketplace.
func (m *Marketplace) IsDelegatedTo(delegation address.Address) bool {
	return m.HasAuctioneer && m.AuctioneerAddress != nil &&
		*m.AuctioneerAddress == delegation
}

// Fee returns the marketplace fee due on the given price.
func (m *Marketplace) Fee(price uint64) uint64 {
	return mathutil.FeeAmount(price, uint64(m.FeeBasisPoints))
}
