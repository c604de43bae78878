package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
)

// TradeStateKind is the role of a trade state in a sale.
type TradeStateKind int

const (
	// TradeStateSell is a listing.
	TradeStateSell TradeStateKind = iota
	// TradeStateBuy is a bid.
	TradeStateBuy
	// TradeStateFree is the zero priced record created along with every
	// listing and consumed at settlement.
	TradeStateFree
)

func (k TradeStateKind) String() string {
	switch k {
	case TradeStateSell:
		return "Sell"
	case TradeStateBuy:
		return "Buy"
	case TradeStateFree:
		return "Free"
	default:
		return "Unknown"
	}
}

// TradeState records a sell or buy intent at a specific price and quantity.
// Its address is a pure function of the fields of TradeStateArgs, except
// Kind and Mediated.
type TradeState struct {
	Address      address.Address
	Bump         uint8
	Kind         TradeStateKind
	Owner        address.Address
	Marketplace  address.Address
	TokenAccount address.Address
	TokenMint    address.Address
	TreasuryMint address.Address
	Price        address.PriceSeed
	Quantity     uint64
	// Mediated trade states were created through the auctioneer and can only
	// be cancelled or settled through it.
	Mediated  bool
	Status    Status
	CreatedAt int64
}

// TradeStateArgs are the semantic inputs of a trade state derivation.
type TradeStateArgs struct {
	Kind         TradeStateKind
	Owner        address.Address
	Marketplace  address.Address
	TokenAccount address.Address
	TokenMint    address.Address
	TreasuryMint address.Address
	Price        address.PriceSeed
	Quantity     uint64
	Mediated     bool
}

func NewTradeState(
	args TradeStateArgs, addr address.Address, bump uint8, createdAt int64,
) (*TradeState, error) {
	if args.Quantity == 0 {
		return nil, ErrInvalidQuantity
	}
	if args.Price.Unbound && args.Kind != TradeStateSell {
		return nil, ErrMismatch
	}

	return &TradeState{
		Address:      addr,
		Bump:         bump,
		Kind:         args.Kind,
		Owner:        args.Owner,
		Marketplace:  args.Marketplace,
		TokenAccount: args.TokenAccount,
		TokenMint:    args.TokenMint,
		TreasuryMint: args.TreasuryMint,
		Price:        args.Price,
		Quantity:     args.Quantity,
		Mediated:     args.Mediated,
		Status:       StatusActive,
		CreatedAt:    createdAt,
	}, nil
}

func (t *TradeState) IsActive() bool {
	return t.Status == StatusActive
}

func (t *TradeState) IsOwner(signer address.Address) bool {
	return t.Owner == signer
}

// Retire marks the trade state as consumed or cancelled.
func (t *TradeState) Retire() error {
	if !t.IsActive() {
		return ErrStaleTradeState
	}
	t.Status = StatusRetired
	return nil
}

// MatchesAsset reports whether two trade states refer to the same asset in
// the same marketplace and quantity.
func (t *TradeState) MatchesAsset(other *TradeState) bool {
	return t.Marketplace == other.Marketplace &&
		t.TokenMint == other.TokenMint &&
		t.TreasuryMint == other.TreasuryMint &&
		t.Quantity == other.Quantity
}
