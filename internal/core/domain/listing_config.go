package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

// ListingConfigVersion is the schema version of new listing configs.
const ListingConfigVersion = 1

// Bid is the current best offer of a timed auction.
type Bid struct {
	Amount          uint64
	Buyer           address.Address
	BuyerTradeState address.Address
}

// ListingTiming are the auction parameters chosen by the seller.
type ListingTiming struct {
	StartTime int64
	EndTime   int64
	// Minimum acceptable bid, 0 means no reserve.
	ReservePrice uint64
	// Minimum raise over the highest bid, 0 means none.
	MinBidIncrement uint64
	// A bid placed when less than TimeExtPeriod seconds are left pushes the
	// end to now + TimeExtDelta.
	TimeExtPeriod uint32
	TimeExtDelta  uint32
}

// ListingConfig holds the timing and pricing rules of an auctioneer-mediated
// listing.
type ListingConfig struct {
	Address      address.Address
	Bump         uint8
	Version      int
	Seller       address.Address
	Marketplace  address.Address
	TokenAccount address.Address
	TokenMint    address.Address
	TreasuryMint address.Address
	Quantity     uint64
	ListingTiming
	HighestBid *Bid
	Status     Status
}

func NewListingConfig(
	addr address.Address, bump uint8, sell *TradeState, timing ListingTiming,
) (*ListingConfig, error) {
	if timing.EndTime <= timing.StartTime {
		return nil, ErrInvalidTiming
	}

	return &ListingConfig{
		Address:       addr,
		Bump:          bump,
		Version:       ListingConfigVersion,
		Seller:        sell.Owner,
		Marketplace:   sell.Marketplace,
		TokenAccount:  sell.TokenAccount,
		TokenMint:     sell.TokenMint,
		TreasuryMint:  sell.TreasuryMint,
		Quantity:      sell.Quantity,
		ListingTiming: timing,
		Status:        StatusActive,
	}, nil
}

func (l *ListingConfig) IsActive() bool {
	return l.Status == StatusActive
}

func (l *ListingConfig) IsOpen(now int64) bool {
	return now >= l.StartTime && now <= l.EndTime
}

func (l *ListingConfig) HasEnded(now int64) bool {
	return now > l.EndTime
}

// ValidateBid checks the bid against the auction window, reserve price and
// minimum increment.
func (l *ListingConfig) ValidateBid(now int64, price uint64) error {
	if !l.IsActive() {
		return ErrStaleTradeState
	}
	if !l.IsOpen(now) {
		return ErrAuctionNotOpen
	}
	if price < l.ReservePrice {
		return ErrBelowReserve
	}
	if l.HighestBid != nil {
		min, err := mathutil.SafeAdd(l.HighestBid.Amount, l.MinBidIncrement)
		if err != nil {
			return ErrIncrementTooSmall
		}
		if price < min {
			return ErrIncrementTooSmall
		}
	}
	return nil
}

// PlaceBid validates and records a bid, extending the end time if the bid
// falls into the extension period. It returns whether the end was extended.
func (l *ListingConfig) PlaceBid(now int64, bid Bid) (bool, error) {
	if err := l.ValidateBid(now, bid.Amount); err != nil {
		return false, err
	}

	extended := false
	if l.EndTime-now < int64(l.TimeExtPeriod) {
		if newEnd := now + int64(l.TimeExtDelta); newEnd > l.EndTime {
			l.EndTime = newEnd
			extended = true
		}
	}

	b := bid
	l.HighestBid = &b
	return extended, nil
}

// IsHighestBid reports whether the given buy trade state holds the best bid.
func (l *ListingConfig) IsHighestBid(buyerTradeState address.Address) bool {
	return l.HighestBid != nil && l.HighestBid.BuyerTradeState == buyerTradeState
}

func (l *ListingConfig) Retire() {
	l.Status = StatusRetired
}
