package dbbadger

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type tradeStateRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTradeStateRepositoryImpl initialize a badger implementation of the
// domain.TradeStateRepository
func NewTradeStateRepositoryImpl(store *badgerhold.Store) domain.TradeStateRepository {
	return tradeStateRepositoryImpl{store}
}

func (t tradeStateRepositoryImpl) AddTradeState(
	ctx context.Context, tradeState *domain.TradeState,
) error {
	current, err := t.GetTradeState(ctx, tradeState.Address)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if current != nil && current.IsActive() {
		return domain.ErrAlreadyExists
	}
	return upsert(ctx, t.store, tradeState.Address.String(), tradeState)
}

func (t tradeStateRepositoryImpl) GetTradeState(
	ctx context.Context, addr address.Address,
) (*domain.TradeState, error) {
	var tradeState domain.TradeState
	if err := get(ctx, t.store, addr.String(), &tradeState); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tradeState, nil
}

func (t tradeStateRepositoryImpl) GetActiveTradeStatesByMarketplace(
	ctx context.Context, marketplace address.Address,
) ([]domain.TradeState, error) {
	var tradeStates []domain.TradeState
	query := badgerhold.Where("Marketplace").Eq(marketplace)
	if err := find(ctx, t.store, &tradeStates, query); err != nil {
		return nil, err
	}

	active := make([]domain.TradeState, 0, len(tradeStates))
	for _, ts := range tradeStates {
		if ts.IsActive() {
			active = append(active, ts)
		}
	}
	return active, nil
}

func (t tradeStateRepositoryImpl) UpdateTradeState(
	ctx context.Context, addr address.Address,
	updateFn func(t *domain.TradeState) (*domain.TradeState, error),
) error {
	tradeState, err := t.GetTradeState(ctx, addr)
	if err != nil {
		return err
	}

	updatedTradeState, err := updateFn(tradeState)
	if err != nil {
		return err
	}

	return update(ctx, t.store, addr.String(), updatedTradeState)
}
