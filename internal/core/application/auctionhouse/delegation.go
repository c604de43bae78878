package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// DelegateAuctioneer makes auctioneerAuthority the only auctioneer allowed
// to mediate operations on the marketplace. A previous delegate is retired.
func (s *service) DelegateAuctioneer(
	ctx context.Context, signer, marketplace, auctioneerAuthority address.Address,
) (*domain.AuctioneerDelegation, error) {
	res, err := s.run(ctx, "delegate", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if !m.IsAuthority(signer) {
			return nil, domain.ErrUnauthorized
		}

		addr, bump := s.deriver.Auctioneer(marketplace, auctioneerAuthority)
		delegations := s.repoManager.DelegationRepository()

		if m.HasAuctioneer && !m.IsDelegatedTo(addr) {
			if err := delegations.UpdateDelegation(
				ctx, *m.AuctioneerAddress,
				func(d *domain.AuctioneerDelegation) (*domain.AuctioneerDelegation, error) {
					d.Retire()
					return d, nil
				},
			); err != nil && err != domain.ErrNotFound {
				return nil, err
			}
		}

		delegation := domain.NewAuctioneerDelegation(
			addr, bump, marketplace, auctioneerAuthority,
		)
		if err := delegations.AddDelegation(ctx, delegation); err != nil {
			return nil, err
		}

		if err := s.repoManager.MarketplaceRepository().UpdateMarketplace(
			ctx, marketplace,
			func(m *domain.Marketplace) (*domain.Marketplace, error) {
				m.SetAuctioneer(addr)
				return m, nil
			},
		); err != nil {
			return nil, err
		}

		if err := s.journal(ctx, "delegate", signer, nil, marketplace, addr); err != nil {
			return nil, err
		}
		return delegation, nil
	})
	if err != nil {
		return nil, err
	}

	delegation := res.(*domain.AuctioneerDelegation)
	log.WithFields(log.Fields{
		"marketplace": marketplace,
		"auctioneer":  auctioneerAuthority,
	}).Info("auctioneer delegated")
	return delegation, nil
}

// checkAuctioneer verifies that a mediated call comes from the current
// delegate of the marketplace. Direct calls pass through.
func (s *service) checkAuctioneer(
	ctx context.Context, m *domain.Marketplace, auctioneer *AuctioneerContext,
) error {
	if auctioneer == nil {
		return nil
	}
	if !m.HasAuctioneer {
		return domain.ErrNoAuctioneer
	}

	addr, _ := s.deriver.Auctioneer(m.Address, auctioneer.Authority)
	if !m.IsDelegatedTo(addr) {
		return domain.ErrNotAuthorized
	}

	delegation, err := s.repoManager.DelegationRepository().GetDelegation(ctx, addr)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotAuthorized
		}
		return err
	}
	if !delegation.IsActive() || delegation.AuctioneerAuthority != auctioneer.Authority {
		return domain.ErrNotAuthorized
	}
	return nil
}
