package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type marketplaceRepositoryImpl struct {
	store *badgerhold.Store
}

// NewMarketplaceRepositoryImpl initialize a badger implementation of the
// domain.MarketplaceRepository
func NewMarketplaceRepositoryImpl(store *badgerhold.Store) domain.MarketplaceRepository {
	return marketplaceRepositoryImpl{store}
}

func (m marketplaceRepositoryImpl) AddMarketplace(
	ctx context.Context, marketplace *domain.Marketplace,
) error {
	if err := insert(ctx, m.store, marketplace.Address.String(), marketplace); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (m marketplaceRepositoryImpl) GetMarketplace(
	ctx context.Context, addr address.Address,
) (*domain.Marketplace, error) {
	var marketplace domain.Marketplace
	if err := get(ctx, m.store, addr.String(), &marketplace); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &marketplace, nil
}

func (m marketplaceRepositoryImpl) GetAllMarketplaces(
	ctx context.Context,
) ([]domain.Marketplace, error) {
	var marketplaces []domain.Marketplace
	if err := find(ctx, m.store, &marketplaces, nil); err != nil {
		return nil, err
	}
	return marketplaces, nil
}

func (m marketplaceRepositoryImpl) UpdateMarketplace(
	ctx context.Context, addr address.Address,
	updateFn func(m *domain.Marketplace) (*domain.Marketplace, error),
) error {
	marketplace, err := m.GetMarketplace(ctx, addr)
	if err != nil {
		return err
	}

	updatedMarketplace, err := updateFn(marketplace)
	if err != nil {
		return err
	}

	return update(ctx, m.store, addr.String(), updatedMarketplace)
}
