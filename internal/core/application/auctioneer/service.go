package auctioneer

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/stats"
)

// Service is the timed auction strategy. Listings have no price baked in,
// bids are ranked by amount within the auction window and only the highest
// bid can be settled once the auction ended.
//
// Every operation is mediated: the strategy acts as its own authority when
// calling the auction house, which in turn must have delegated it.
type Service interface {
	Authorize(
		ctx context.Context, signer, marketplace address.Address,
	) (*domain.AuctioneerAuthority, error)

	Sell(ctx context.Context, signer address.Address, args SellArgs) (*SellResult, error)
	Buy(ctx context.Context, signer address.Address, args BuyArgs) (*BuyResult, error)
	Cancel(
		ctx context.Context, signer, tradeState address.Address,
	) (*domain.TradeState, error)
	ExecuteSale(
		ctx context.Context, signer address.Address, args auctionhouse.ExecuteSaleArgs,
	) (*domain.SaleReceipt, error)

	Deposit(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
	) (*domain.EscrowAccount, error)
	Withdraw(
		ctx context.Context, signer, marketplace address.Address, amount uint64,
	) (*domain.EscrowAccount, error)

	GetListingConfig(ctx context.Context, addr address.Address) (*domain.ListingConfig, error)
	ListActiveListings(
		ctx context.Context, marketplace address.Address,
	) ([]domain.ListingConfig, error)
	// AuthorityAddress returns the principal the strategy acts as for the
	// given marketplace. It's the address to delegate to.
	AuthorityAddress(marketplace address.Address) address.Address
}

type service struct {
	repoManager  ports.RepoManager
	auctionHouse auctionhouse.Service
	deriver      *address.Deriver
	clock        ports.Clock
}

func NewService(
	repoManager ports.RepoManager, auctionHouse auctionhouse.Service,
	clock ports.Clock,
) (Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if auctionHouse == nil {
		return nil, fmt.Errorf("missing auction house service")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &service{
		repoManager:  repoManager,
		auctionHouse: auctionHouse,
		deriver:      auctionHouse.Deriver(),
		clock:        clock,
	}, nil
}

func (s *service) AuthorityAddress(marketplace address.Address) address.Address {
	addr, _ := s.deriver.AuctioneerAuthority(marketplace)
	return addr
}

func (s *service) GetListingConfig(
	ctx context.Context, addr address.Address,
) (*domain.ListingConfig, error) {
	return s.repoManager.ListingConfigRepository().GetListingConfig(ctx, addr)
}

func (s *service) ListActiveListings(
	ctx context.Context, marketplace address.Address,
) ([]domain.ListingConfig, error) {
	return s.repoManager.ListingConfigRepository().GetActiveListingConfigsByMarketplace(
		ctx, marketplace,
	)
}

// run applies handler and every auction house call it makes in a single
// read-write transaction.
func (s *service) run(
	ctx context.Context, op string,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	op = "auctioneer_" + op
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

// authorityContext returns the context for calling the auction house on
// behalf of the strategy. The strategy must have accepted the marketplace.
func (s *service) authorityContext(
	ctx context.Context, marketplace address.Address,
) (*auctionhouse.AuctioneerContext, error) {
	addr := s.AuthorityAddress(marketplace)
	if _, err := s.repoManager.DelegationRepository().GetAuctioneerAuthority(
		ctx, addr,
	); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotAuthorized
		}
		return nil, err
	}
	return &auctionhouse.AuctioneerContext{Authority: addr}, nil
}

// Authorize accepts the marketplace. It must be signed by the marketplace
// authority.
func (s *service) Authorize(
	ctx context.Context, signer, marketplace address.Address,
) (*domain.AuctioneerAuthority, error) {
	res, err := s.run(ctx, "authorize", func(ctx context.Context) (interface{}, error) {
		m, err := s.auctionHouse.GetMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if !m.IsAuthority(signer) {
			return nil, domain.ErrUnauthorized
		}

		addr, bump := s.deriver.AuctioneerAuthority(marketplace)
		authority := &domain.AuctioneerAuthority{
			Address:     addr,
			Bump:        bump,
			Marketplace: marketplace,
		}
		if err := s.repoManager.DelegationRepository().AddAuctioneerAuthority(
			ctx, authority,
		); err != nil {
			return nil, err
		}

		entry := domain.NewJournalEntry(
			"authorize", signer, true, s.now(), marketplace, addr,
		)
		if err := s.repoManager.Journal().Append(ctx, entry); err != nil {
			return nil, err
		}
		return authority, nil
	})
	if err != nil {
		return nil, err
	}

	authority := res.(*domain.AuctioneerAuthority)
	log.WithFields(log.Fields{
		"marketplace": marketplace,
		"authority":   authority.Address,
	}).Info("auctioneer authorized")
	return authority, nil
}
