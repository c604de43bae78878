package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type escrowRepositoryImpl struct {
	store *badgerhold.Store
}

// NewEscrowRepositoryImpl initialize a badger implementation of the
// domain.EscrowRepository
func NewEscrowRepositoryImpl(store *badgerhold.Store) domain.EscrowRepository {
	return escrowRepositoryImpl{store}
}

func (e escrowRepositoryImpl) GetEscrow(
	ctx context.Context, addr address.Address,
) (*domain.EscrowAccount, error) {
	var escrow domain.EscrowAccount
	if err := get(ctx, e.store, addr.String(), &escrow); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &escrow, nil
}

func (e escrowRepositoryImpl) GetEscrowsByWallet(
	ctx context.Context, wallet address.Address,
) ([]domain.EscrowAccount, error) {
	var escrows []domain.EscrowAccount
	query := badgerhold.Where("Wallet").Eq(wallet)
	if err := find(ctx, e.store, &escrows, query); err != nil {
		return nil, err
	}
	return escrows, nil
}

func (e escrowRepositoryImpl) UpsertEscrow(
	ctx context.Context, escrow *domain.EscrowAccount,
	updateFn func(e *domain.EscrowAccount) (*domain.EscrowAccount, error),
) error {
	current, err := e.GetEscrow(ctx, escrow.Address)
	if err != nil {
		if err != domain.ErrNotFound {
			return err
		}
		current = escrow
	}

	updatedEscrow, err := updateFn(current)
	if err != nil {
		return err
	}

	return upsert(ctx, e.store, escrow.Address.String(), updatedEscrow)
}

func (e escrowRepositoryImpl) DeleteEscrow(
	ctx context.Context, addr address.Address,
) error {
	if err := remove(ctx, e.store, addr.String(), domain.EscrowAccount{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
