package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type receiptRepositoryImpl struct {
	store *badgerhold.Store
}

// NewReceiptRepositoryImpl initialize a badger implementation of the
// domain.ReceiptRepository
func NewReceiptRepositoryImpl(store *badgerhold.Store) domain.ReceiptRepository {
	return receiptRepositoryImpl{store}
}

func (r receiptRepositoryImpl) AddReceipt(
	ctx context.Context, receipt *domain.SaleReceipt,
) error {
	if err := insert(ctx, r.store, receipt.ID, receipt); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r receiptRepositoryImpl) GetReceipt(
	ctx context.Context, id string,
) (*domain.SaleReceipt, error) {
	var receipt domain.SaleReceipt
	if err := get(ctx, r.store, id, &receipt); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r receiptRepositoryImpl) GetReceiptsByMarketplace(
	ctx context.Context, marketplace address.Address,
) ([]domain.SaleReceipt, error) {
	var receipts []domain.SaleReceipt
	query := badgerhold.Where("Marketplace").Eq(marketplace).SortBy("SettledAt")
	if err := find(ctx, r.store, &receipts, query); err != nil {
		return nil, err
	}
	return receipts, nil
}
