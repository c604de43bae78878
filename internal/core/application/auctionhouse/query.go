package auctionhouse

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

func (s *service) GetMarketplace(
	ctx context.Context, addr address.Address,
) (*domain.Marketplace, error) {
	return s.repoManager.MarketplaceRepository().GetMarketplace(ctx, addr)
}

func (s *service) ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error) {
	return s.repoManager.MarketplaceRepository().GetAllMarketplaces(ctx)
}

func (s *service) GetEscrow(
	ctx context.Context, marketplace, wallet address.Address,
) (*domain.EscrowAccount, error) {
	addr, _ := s.deriver.Escrow(marketplace, wallet)
	return s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
}

func (s *service) GetTradeState(
	ctx context.Context, addr address.Address,
) (*domain.TradeState, error) {
	return s.repoManager.TradeStateRepository().GetTradeState(ctx, addr)
}

func (s *service) ListActiveTradeStates(
	ctx context.Context, marketplace address.Address,
) ([]domain.TradeState, error) {
	return s.repoManager.TradeStateRepository().GetActiveTradeStatesByMarketplace(
		ctx, marketplace,
	)
}

func (s *service) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	return s.repoManager.AssetRepository().GetTokenAccount(ctx, addr)
}

func (s *service) GetNativeAccount(
	ctx context.Context, addr address.Address,
) (*domain.NativeAccount, error) {
	return s.repoManager.AssetRepository().GetNativeAccount(ctx, addr)
}

func (s *service) GetReceipt(ctx context.Context, id string) (*domain.SaleReceipt, error) {
	return s.repoManager.ReceiptRepository().GetReceipt(ctx, id)
}

func (s *service) ListReceipts(
	ctx context.Context, marketplace address.Address,
) ([]domain.SaleReceipt, error) {
	return s.repoManager.ReceiptRepository().GetReceiptsByMarketplace(ctx, marketplace)
}

func (s *service) ListJournal(
	ctx context.Context, from uint64, limit int,
) ([]domain.JournalEntry, error) {
	return s.repoManager.Journal().List(ctx, from, limit)
}
