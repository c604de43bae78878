package auctionhouse

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/stats"
)

// Service is the auction house protocol: marketplace registry, auctioneer
// delegation, escrow ledger, trade states and settlement. Every write
// operation is applied atomically, either entirely or not at all.
type Service interface {
	CreateMarketplace(
		ctx context.Context, signer address.Address, args domain.MarketplaceArgs,
	) (*domain.Marketplace, error)
	UpdateMarketplace(
		ctx context.Context, signer, marketplace address.Address,
		update domain.MarketplaceUpdate,
	) (*domain.Marketplace, error)
	WithdrawFromFee(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
	) error
	WithdrawFromTreasury(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
	) error

	DelegateAuctioneer(
		ctx context.Context, signer, marketplace, auctioneerAuthority address.Address,
	) (*domain.AuctioneerDelegation, error)

	Deposit(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
		auctioneer *AuctioneerContext,
	) (*domain.EscrowAccount, error)
	Withdraw(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
		auctioneer *AuctioneerContext,
	) (*domain.EscrowAccount, error)
	CloseEscrow(ctx context.Context, signer, marketplace address.Address) error

	Sell(
		ctx context.Context, signer address.Address, args SellArgs,
		auctioneer *AuctioneerContext,
	) (*SellResult, error)
	Buy(
		ctx context.Context, signer address.Address, args BuyArgs,
		auctioneer *AuctioneerContext,
	) (*domain.TradeState, error)
	Cancel(
		ctx context.Context, signer, tradeState address.Address,
		auctioneer *AuctioneerContext,
	) (*domain.TradeState, error)

	ExecuteSale(
		ctx context.Context, signer address.Address, args ExecuteSaleArgs,
		auctioneer *AuctioneerContext,
	) (*domain.SaleReceipt, error)

	ImportAsset(
		ctx context.Context, signer address.Address, args ImportAssetArgs,
	) (*domain.TokenAccount, error)
	Fund(ctx context.Context, addr address.Address, amount uint64) (*domain.NativeAccount, error)

	Query
}

// Query groups the read-only methods of the Service.
type Query interface {
	GetMarketplace(ctx context.Context, addr address.Address) (*domain.Marketplace, error)
	ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error)
	GetEscrow(ctx context.Context, marketplace, wallet address.Address) (*domain.EscrowAccount, error)
	GetTradeState(ctx context.Context, addr address.Address) (*domain.TradeState, error)
	ListActiveTradeStates(ctx context.Context, marketplace address.Address) ([]domain.TradeState, error)
	GetTokenAccount(ctx context.Context, addr address.Address) (*domain.TokenAccount, error)
	GetNativeAccount(ctx context.Context, addr address.Address) (*domain.NativeAccount, error)
	GetReceipt(ctx context.Context, id string) (*domain.SaleReceipt, error)
	ListReceipts(ctx context.Context, marketplace address.Address) ([]domain.SaleReceipt, error)
	ListJournal(ctx context.Context, from uint64, limit int) ([]domain.JournalEntry, error)
	Deriver() *address.Deriver
}

type service struct {
	repoManager ports.RepoManager
	deriver     *address.Deriver
	clock       ports.Clock

	// lamports kept in fee and treasury accounts to keep them alive
	minAccountReserve uint64
}

func NewService(
	repoManager ports.RepoManager, deriver *address.Deriver, clock ports.Clock,
	minAccountReserve uint64,
) (Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if deriver == nil {
		return nil, fmt.Errorf("missing address deriver")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &service{repoManager, deriver, clock, minAccountReserve}, nil
}

func (s *service) Deriver() *address.Deriver {
	return s.deriver
}

// run applies handler in a read-write transaction and records the outcome.
func (s *service) run(
	ctx context.Context, op string,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	start := time.Now()
	res, err := s.repoManager.RunTransaction(ctx, false, handler)
	stats.ObserveOperation(op, time.Since(start), err)
	if err != nil {
		log.WithError(err).WithField("operation", op).Debug("operation rejected")
		return nil, err
	}
	return res, nil
}

func (s *service) now() int64 {
	return s.clock.Now().Unix()
}

func (s *service) journal(
	ctx context.Context, op string, signer address.Address,
	auctioneer *AuctioneerContext, accounts ...address.Address,
) error {
	entry := domain.NewJournalEntry(op, signer, auctioneer != nil, s.now(), accounts...)
	return s.repoManager.Journal().Append(ctx, entry)
}

func (s *service) getMarketplace(
	ctx context.Context, addr address.Address,
) (*domain.Marketplace, error) {
	return s.repoManager.MarketplaceRepository().GetMarketplace(ctx, addr)
}

func (s *service) credit(ctx context.Context, addr address.Address, amount uint64) error {
	return s.repoManager.AssetRepository().UpdateNativeAccount(
		ctx, addr,
		func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
			if err := a.Credit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}

func (s *service) debit(ctx context.Context, addr address.Address, amount uint64) error {
	return s.repoManager.AssetRepository().UpdateNativeAccount(
		ctx, addr,
		func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
			if err := a.Debit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}
