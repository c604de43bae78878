package domain

import "github.com/tdex-network/auction-house/pkg/address"

// RoyaltyShare is the pro-rata right of an address to a part of the sale
// proceeds. Shares of an asset sum up to 100.
type RoyaltyShare struct {
	Address  address.Address
	Share    uint8
	Verified bool
}

// AssetMetadata is imported from the minter, it's never created nor changed
// by the protocol.
type AssetMetadata struct {
	Address              address.Address
	Mint                 address.Address
	Name                 string
	Symbol               string
	URI                  string
	// Informational, settlement splits the whole pool by Creators.
	SellerFeeBasisPoints uint16
	Creators             []RoyaltyShare
	MaxSupply            *uint64
}

// ValidateShares returns ErrInvalidRoyaltySplit unless shares sum to 100.
func ValidateShares(shares []RoyaltyShare) error {
	total := 0
	for _, s := range shares {
		total += int(s.Share)
	}
	if total != 100 {
		return ErrInvalidRoyaltySplit
	}
	return nil
}
