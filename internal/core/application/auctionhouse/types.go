package auctionhouse

import (
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// AuctioneerContext identifies the auctioneer authority mediating a call.
// It's only built by the auctioneer service after verifying its own
// authorization record.
type AuctioneerContext struct {
	Authority address.Address
}

type SellArgs struct {
	Marketplace address.Address
	// Holding account of the asset being listed, owned by the signer.
	TokenAccount address.Address
	Price        address.PriceSeed
	Quantity     uint64
}

type SellResult struct {
	Sell *domain.TradeState
	Free *domain.TradeState
}

type BuyArgs struct {
	Marketplace address.Address
	// Seller's holding account of the asset.
	TokenAccount address.Address
	Price        uint64
	Quantity     uint64
}

type ExecuteSaleArgs struct {
	Marketplace    address.Address
	SellTradeState address.Address
	BuyTradeState  address.Address
	Price          uint64
	Quantity       uint64
	Royalties      []domain.RoyaltyShare
}

// ImportAssetArgs describe an asset produced by the external minter.
type ImportAssetArgs struct {
	Mint                 address.Address
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []domain.RoyaltyShare
	Supply               uint64
	MaxSupply            *uint64
}
