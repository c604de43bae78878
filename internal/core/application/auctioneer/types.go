package auctioneer

import (
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

type SellArgs struct {
	Marketplace  address.Address
	TokenAccount address.Address
	Quantity     uint64
	Timing       domain.ListingTiming
}

type SellResult struct {
	Sell    *domain.TradeState
	Free    *domain.TradeState
	Listing *domain.ListingConfig
}

type BuyArgs struct {
	Marketplace address.Address
	// Seller's holding account of the auctioned asset.
	TokenAccount address.Address
	Price        uint64
	Quantity     uint64
}

type BuyResult struct {
	Buy     *domain.TradeState
	Listing *domain.ListingConfig
	// Whether the bid pushed the end of the auction.
	Extended bool
}
