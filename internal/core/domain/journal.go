package domain

import (
	"github.com/google/uuid"
	"github.com/tdex-network/auction-house/pkg/address"
)

// JournalEntry records an operation applied to the ledger. Entries are
// appended in the same transaction as the operation's effects.
type JournalEntry struct {
	Sequence   uint64
	ID         string
	Operation  string
	Signer     address.Address
	Auctioneer bool
	Accounts   []address.Address
	Timestamp  int64
}

func NewJournalEntry(
	op string, signer address.Address, auctioneer bool, timestamp int64,
	accounts ...address.Address,
) *JournalEntry {
	return &JournalEntry{
		ID:         uuid.New().String(),
		Operation:  op,
		Signer:     signer,
		Auctioneer: auctioneer,
		Accounts:   accounts,
		Timestamp:  timestamp,
	}
}
