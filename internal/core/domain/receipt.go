package domain

import (
	"github.com/google/uuid"
	"github.com/tdex-network/auction-house/pkg/address"
)

// Payout is an amount credited to an address at settlement.
type Payout struct {
	Address address.Address
	Amount  uint64
}

// SaleReceipt is the outcome of a settlement.
type SaleReceipt struct {
	ID              string
	Marketplace     address.Address
	Seller          address.Address
	Buyer           address.Address
	TokenMint       address.Address
	SellTradeState  address.Address
	BuyTradeState   address.Address
	Price           uint64
	Quantity        uint64
	Fee             uint64
	Royalties       []Payout
	SellerNet       uint64
	SettledAt       int64
}

func NewSaleReceipt(sell, buy *TradeState, price uint64, settledAt int64) *SaleReceipt {
	return &SaleReceipt{
		ID:             uuid.New().String(),
		Marketplace:    sell.Marketplace,
		Seller:         sell.Owner,
		Buyer:          buy.Owner,
		TokenMint:      sell.TokenMint,
		SellTradeState: sell.Address,
		BuyTradeState:  buy.Address,
		Price:          price,
		Quantity:       buy.Quantity,
		SettledAt:      settledAt,
	}
}

// RoyaltyTotal is the sum of all royalty payouts.
func (r *SaleReceipt) RoyaltyTotal() uint64 {
	total := uint64(0)
	for _, p := range r.Royalties {
		total += p.Amount
	}
	return total
}
