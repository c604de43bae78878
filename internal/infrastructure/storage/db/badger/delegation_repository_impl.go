package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type delegationRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDelegationRepositoryImpl initialize a badger implementation of the
// domain.DelegationRepository
func NewDelegationRepositoryImpl(store *badgerhold.Store) domain.DelegationRepository {
	return delegationRepositoryImpl{store}
}

func (d delegationRepositoryImpl) AddDelegation(
	ctx context.Context, delegation *domain.AuctioneerDelegation,
) error {
	current, err := d.GetDelegation(ctx, delegation.Address)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if current != nil && current.IsActive() {
		return domain.ErrAlreadyExists
	}
	return upsert(ctx, d.store, delegation.Address.String(), delegation)
}

func (d delegationRepositoryImpl) GetDelegation(
	ctx context.Context, addr address.Address,
) (*domain.AuctioneerDelegation, error) {
	var delegation domain.AuctioneerDelegation
	if err := get(ctx, d.store, addr.String(), &delegation); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &delegation, nil
}

func (d delegationRepositoryImpl) UpdateDelegation(
	ctx context.Context, addr address.Address,
	updateFn func(d *domain.AuctioneerDelegation) (*domain.AuctioneerDelegation, error),
) error {
	delegation, err := d.GetDelegation(ctx, addr)
	if err != nil {
		return err
	}

	updatedDelegation, err := updateFn(delegation)
	if err != nil {
		return err
	}

	return update(ctx, d.store, addr.String(), updatedDelegation)
}

func (d delegationRepositoryImpl) AddAuctioneerAuthority(
	ctx context.Context, authority *domain.AuctioneerAuthority,
) error {
	if err := insert(ctx, d.store, authority.Address.String(), authority); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (d delegationRepositoryImpl) GetAuctioneerAuthority(
	ctx context.Context, addr address.Address,
) (*domain.AuctioneerAuthority, error) {
	var authority domain.AuctioneerAuthority
	if err := get(ctx, d.store, addr.String(), &authority); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &authority, nil
}
