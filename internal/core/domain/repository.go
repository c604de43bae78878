package domain

import (
	"context"

	"github.com/tdex-network/auction-house/pkg/address"
)

// MarketplaceRepository is the abstraction for any kind of database intended
// to persist Marketplaces.
type MarketplaceRepository interface {
	// AddMarketplace fails with ErrAlreadyExists if the address is taken.
	AddMarketplace(ctx context.Context, marketplace *Marketplace) error
	GetMarketplace(ctx context.Context, addr address.Address) (*Marketplace, error)
	GetAllMarketplaces(ctx context.Context) ([]Marketplace, error)
	// UpdateMarketplace updates the state of a marketplace. The closure
	// function let's commit multiple changes in a transactional way.
	UpdateMarketplace(
		ctx context.Context, addr address.Address,
		updateFn func(m *Marketplace) (*Marketplace, error),
	) error
}

// DelegationRepository persists both sides of the auctioneer authorization.
type DelegationRepository interface {
	// AddDelegation overwrites a retired delegation at the same address and
	// fails with ErrAlreadyExists for an active one.
	AddDelegation(ctx context.Context, delegation *AuctioneerDelegation) error
	GetDelegation(ctx context.Context, addr address.Address) (*AuctioneerDelegation, error)
	UpdateDelegation(
		ctx context.Context, addr address.Address,
		updateFn func(d *AuctioneerDelegation) (*AuctioneerDelegation, error),
	) error
	AddAuctioneerAuthority(ctx context.Context, authority *AuctioneerAuthority) error
	GetAuctioneerAuthority(ctx context.Context, addr address.Address) (*AuctioneerAuthority, error)
}

// EscrowRepository persists bidders' escrow accounts.
type EscrowRepository interface {
	GetEscrow(ctx context.Context, addr address.Address) (*EscrowAccount, error)
	GetEscrowsByWallet(ctx context.Context, wallet address.Address) ([]EscrowAccount, error)
	// UpsertEscrow creates the escrow with the given template if it does not
	// exist, then applies updateFn.
	UpsertEscrow(
		ctx context.Context, escrow *EscrowAccount,
		updateFn func(e *EscrowAccount) (*EscrowAccount, error),
	) error
	DeleteEscrow(ctx context.Context, addr address.Address) error
}

// TradeStateRepository persists listings and bids.
type TradeStateRepository interface {
	// AddTradeState overwrites a retired trade state at the same address and
	// fails with ErrAlreadyExists for an active one.
	AddTradeState(ctx context.Context, tradeState *TradeState) error
	GetTradeState(ctx context.Context, addr address.Address) (*TradeState, error)
	GetActiveTradeStatesByMarketplace(
		ctx context.Context, marketplace address.Address,
	) ([]TradeState, error)
	UpdateTradeState(
		ctx context.Context, addr address.Address,
		updateFn func(t *TradeState) (*TradeState, error),
	) error
}

// ListingConfigRepository persists the timing rules of auctions.
type ListingConfigRepository interface {
	AddListingConfig(ctx context.Context, listing *ListingConfig) error
	GetListingConfig(ctx context.Context, addr address.Address) (*ListingConfig, error)
	GetActiveListingConfigsByMarketplace(
		ctx context.Context, marketplace address.Address,
	) ([]ListingConfig, error)
	UpdateListingConfig(
		ctx context.Context, addr address.Address,
		updateFn func(l *ListingConfig) (*ListingConfig, error),
	) error
}

// AssetRepository persists the records imported from the minter and the
// balances of the settlement currency.
type AssetRepository interface {
	AddMetadata(ctx context.Context, metadata *AssetMetadata) error
	GetMetadataByMint(ctx context.Context, mint address.Address) (*AssetMetadata, error)
	AddTokenAccount(ctx context.Context, account *TokenAccount) error
	GetTokenAccount(ctx context.Context, addr address.Address) (*TokenAccount, error)
	// UpsertTokenAccount creates the account with the given template if it
	// does not exist, then applies updateFn.
	UpsertTokenAccount(
		ctx context.Context, account *TokenAccount,
		updateFn func(t *TokenAccount) (*TokenAccount, error),
	) error
	// GetNativeAccount returns an empty account if none exists yet.
	GetNativeAccount(ctx context.Context, addr address.Address) (*NativeAccount, error)
	UpdateNativeAccount(
		ctx context.Context, addr address.Address,
		updateFn func(a *NativeAccount) (*NativeAccount, error),
	) error
}

// ReceiptRepository persists settlement receipts.
type ReceiptRepository interface {
	AddReceipt(ctx context.Context, receipt *SaleReceipt) error
	GetReceipt(ctx context.Context, id string) (*SaleReceipt, error)
	GetReceiptsByMarketplace(
		ctx context.Context, marketplace address.Address,
	) ([]SaleReceipt, error)
}
