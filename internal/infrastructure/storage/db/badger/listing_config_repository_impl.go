package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type listingConfigRepositoryImpl struct {
	store *badgerhold.Store
}

// NewListingConfigRepositoryImpl initialize a badger implementation of the
// domain.ListingConfigRepository
func NewListingConfigRepositoryImpl(store *badgerhold.Store) domain.ListingConfigRepository {
	return listingConfigRepositoryImpl{store}
}

func (l listingConfigRepositoryImpl) AddListingConfig(
	ctx context.Context, listing *domain.ListingConfig,
) error {
	current, err := l.GetListingConfig(ctx, listing.Address)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if current != nil && current.IsActive() {
		return domain.ErrAlreadyExists
	}
	return upsert(ctx, l.store, listing.Address.String(), listing)
}

func (l listingConfigRepositoryImpl) GetListingConfig(
	ctx context.Context, addr address.Address,
) (*domain.ListingConfig, error) {
	var listing domain.ListingConfig
	if err := get(ctx, l.store, addr.String(), &listing); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (l listingConfigRepositoryImpl) GetActiveListingConfigsByMarketplace(
	ctx context.Context, marketplace address.Address,
) ([]domain.ListingConfig, error) {
	var listings []domain.ListingConfig
	query := badgerhold.Where("Marketplace").Eq(marketplace)
	if err := find(ctx, l.store, &listings, query); err != nil {
		return nil, err
	}

	active := make([]domain.ListingConfig, 0, len(listings))
	for _, listing := range listings {
		if listing.IsActive() {
			active = append(active, listing)
		}
	}
	return active, nil
}

func (l listingConfigRepositoryImpl) UpdateListingConfig(
	ctx context.Context, addr address.Address,
	updateFn func(l *domain.ListingConfig) (*domain.ListingConfig, error),
) error {
	listing, err := l.GetListingConfig(ctx, addr)
	if err != nil {
		return err
	}

	updatedListing, err := updateFn(listing)
	if err != nil {
		return err
	}

	return update(ctx, l.store, addr.String(), updatedListing)
}
