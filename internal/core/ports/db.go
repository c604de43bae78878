package ports

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
)

// RepoManager interface defines the repositories of every protocol record
// and the way to apply a group of changes atomically.
type RepoManager interface {
	MarketplaceRepository() domain.MarketplaceRepository
	DelegationRepository() domain.DelegationRepository
	EscrowRepository() domain.EscrowRepository
	TradeStateRepository() domain.TradeStateRepository
	ListingConfigRepository() domain.ListingConfigRepository
	AssetRepository() domain.AssetRepository
	ReceiptRepository() domain.ReceiptRepository
	Journal() Journal

	// RunTransaction runs handler in a single database transaction carried by
	// the ctx passed to it. Read-write transactions are applied one at a time
	// in arrival order. If handler fails nothing is persisted. Nested calls
	// join the outer transaction. A read-write transaction consumes the
	// RequestNonce found in ctx, if any.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}

// Journal is the ordered log of applied operations.
type Journal interface {
	// Append assigns the next sequence number to the entry and stores it.
	Append(ctx context.Context, entry *domain.JournalEntry) error
	// List returns up to limit entries starting from the given sequence.
	List(ctx context.Context, from uint64, limit int) ([]domain.JournalEntry, error)
	// Head returns the sequence number of the last appended entry.
	Head(ctx context.Context) (uint64, error)
}
