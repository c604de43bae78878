package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type assetRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAssetRepositoryImpl initialize a badger implementation of the
// domain.AssetRepository
func NewAssetRepositoryImpl(store *badgerhold.Store) domain.AssetRepository {
	return assetRepositoryImpl{store}
}

func (a assetRepositoryImpl) AddMetadata(
	ctx context.Context, metadata *domain.AssetMetadata,
) error {
	if err := insert(ctx, a.store, metadata.Mint.String(), metadata); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (a assetRepositoryImpl) GetMetadataByMint(
	ctx context.Context, mint address.Address,
) (*domain.AssetMetadata, error) {
	var metadata domain.AssetMetadata
	if err := get(ctx, a.store, mint.String(), &metadata); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &metadata, nil
}

func (a assetRepositoryImpl) AddTokenAccount(
	ctx context.Context, account *domain.TokenAccount,
) error {
	if err := insert(ctx, a.store, account.Address.String(), account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (a assetRepositoryImpl) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	var account domain.TokenAccount
	if err := get(ctx, a.store, addr.String(), &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (a assetRepositoryImpl) UpsertTokenAccount(
	ctx context.Context, account *domain.TokenAccount,
	updateFn func(t *domain.TokenAccount) (*domain.TokenAccount, error),
) error {
	current, err := a.GetTokenAccount(ctx, account.Address)
	if err != nil {
		if err != domain.ErrNotFound {
			return err
		}
		current = account
	}

	updatedAccount, err := updateFn(current)
	if err != nil {
		return err
	}

	return upsert(ctx, a.store, account.Address.String(), updatedAccount)
}

func (a assetRepositoryImpl) GetNativeAccount(
	ctx context.Context, addr address.Address,
) (*domain.NativeAccount, error) {
	var account domain.NativeAccount
	if err := get(ctx, a.store, addr.String(), &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return &domain.NativeAccount{Address: addr}, nil
		}
		return nil, err
	}
	return &account, nil
}

func (a assetRepositoryImpl) UpdateNativeAccount(
	ctx context.Context, addr address.Address,
	updateFn func(a *domain.NativeAccount) (*domain.NativeAccount, error),
) error {
	account, err := a.GetNativeAccount(ctx, addr)
	if err != nil {
		return err
	}

	updatedAccount, err := updateFn(account)
	if err != nil {
		return err
	}

	return upsert(ctx, a.store, addr.String(), updatedAccount)
}
