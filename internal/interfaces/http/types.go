package httpinterface

import (
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// Request bodies of the write endpoints. The signer of a request is never
// part of the body, it's taken from the verified request headers.

type CreateMarketplaceRequest struct {
	TreasuryMint                  address.Address `json:"treasuryMint"`
	FeeWithdrawalDestination      address.Address `json:"feeWithdrawalDestination"`
	TreasuryWithdrawalDestination address.Address `json:"treasuryWithdrawalDestination"`
	FeeBasisPoints                uint16          `json:"feeBasisPoints"`
	CanChangeSalePrice            bool            `json:"canChangeSalePrice"`
}

type UpdateMarketplaceRequest struct {
	Marketplace                   address.Address  `json:"marketplace"`
	FeeBasisPoints                *uint16          `json:"feeBasisPoints,omitempty"`
	CanChangeSalePrice            *bool            `json:"canChangeSalePrice,omitempty"`
	NewAuthority                  *address.Address `json:"newAuthority,omitempty"`
	FeeWithdrawalDestination      *address.Address `json:"feeWithdrawalDestination,omitempty"`
	TreasuryWithdrawalDestination *address.Address `json:"treasuryWithdrawalDestination,omitempty"`
}

// AmountRequest is the body of withdrawals from pools and escrow movements.
type AmountRequest struct {
	Marketplace address.Address `json:"marketplace"`
	Amount      uint64          `json:"amount"`
}

type MarketplaceRequest struct {
	Marketplace address.Address `json:"marketplace"`
}

type DelegateRequest struct {
	Marketplace         address.Address `json:"marketplace"`
	AuctioneerAuthority address.Address `json:"auctioneerAuthority"`
}

// TradeRequest is used for both listings and bids at a fixed price.
type TradeRequest struct {
	Marketplace  address.Address `json:"marketplace"`
	TokenAccount address.Address `json:"tokenAccount"`
	Price        uint64          `json:"price"`
	Quantity     uint64          `json:"quantity"`
}

type AuctionRequest struct {
	Marketplace     address.Address `json:"marketplace"`
	TokenAccount    address.Address `json:"tokenAccount"`
	Quantity        uint64          `json:"quantity"`
	StartTime       int64           `json:"startTime"`
	EndTime         int64           `json:"endTime"`
	ReservePrice    uint64          `json:"reservePrice"`
	MinBidIncrement uint64          `json:"minBidIncrement"`
	TimeExtPeriod   uint32          `json:"timeExtPeriod"`
	TimeExtDelta    uint32          `json:"timeExtDelta"`
}

type CancelRequest struct {
	TradeState address.Address `json:"tradeState"`
}

type ExecuteSaleRequest struct {
	Marketplace    address.Address       `json:"marketplace"`
	SellTradeState address.Address       `json:"sellTradeState"`
	BuyTradeState  address.Address       `json:"buyTradeState"`
	Price          uint64                `json:"price"`
	Quantity       uint64                `json:"quantity"`
	Royalties      []domain.RoyaltyShare `json:"royalties,omitempty"`
}

type ImportAssetRequest struct {
	Mint                 address.Address       `json:"mint"`
	Name                 string                `json:"name"`
	Symbol               string                `json:"symbol"`
	URI                  string                `json:"uri"`
	SellerFeeBasisPoints uint16                `json:"sellerFeeBasisPoints"`
	Creators             []domain.RoyaltyShare `json:"creators,omitempty"`
	Supply               uint64                `json:"supply"`
	MaxSupply            *uint64               `json:"maxSupply,omitempty"`
}

type FaucetRequest struct {
	Address address.Address `json:"address"`
	Amount  uint64          `json:"amount"`
}

type DerivedAddressReply struct {
	Address address.Address `json:"address"`
	Bump    uint8           `json:"bump"`
}

type ErrorReply struct {
	Error string `json:"error"`
}
