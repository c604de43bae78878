package domain

import "github.com/tdex-network/auction-house/pkg/address"

// AuctioneerDelegation is the marketplace side of the mutual authorization
// with an auctioneer. Only the delegation referenced by the marketplace is
// active, any previous one is retired when replaced.
type AuctioneerDelegation struct {
	Address             address.Address
	Bump                uint8
	Marketplace         address.Address
	AuctioneerAuthority address.Address
	Status              Status
}

func NewAuctioneerDelegation(
	addr address.Address, bump uint8, marketplace, auctioneerAuthority address.Address,
) *AuctioneerDelegation {
	return &AuctioneerDelegation{
		Address:             addr,
		Bump:                bump,
		Marketplace:         marketplace,
		AuctioneerAuthority: auctioneerAuthority,
		Status:              StatusActive,
	}
}

func (d *AuctioneerDelegation) IsActive() bool {
	return d.Status == StatusActive
}

func (d *AuctioneerDelegation) Retire() {
	d.Status = StatusRetired
}

// AuctioneerAuthority is the strategy side of the authorization. Its address
// is the principal the auctioneer acts as when calling the marketplace.
type AuctioneerAuthority struct {
	Address     address.Address
	Bump        uint8
	Marketplace address.Address
}
