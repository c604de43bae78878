package auctioneer

import (
	"context"

	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

func (s *service) Deposit(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
) (*domain.EscrowAccount, error) {
	res, err := s.run(ctx, "deposit", func(ctx context.Context) (interface{}, error) {
		ac, err := s.authorityContext(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		return s.auctionHouse.Deposit(ctx, signer, marketplace, amount, ac)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.EscrowAccount), nil
}

// Withdraw refuses to leave the escrow below the sum of the highest bids of
// the signer, so that every auction it leads can be settled.
func (s *service) Withdraw(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
) (*domain.EscrowAccount, error) {
	res, err := s.run(ctx, "withdraw", func(ctx context.Context) (interface{}, error) {
		ac, err := s.authorityContext(ctx, marketplace)
		if err != nil {
			return nil, err
		}

		escrow, err := s.auctionHouse.Withdraw(ctx, signer, marketplace, amount, ac)
		if err != nil {
			return nil, err
		}

		committed, err := s.committedFunds(ctx, signer, marketplace)
		if err != nil {
			return nil, err
		}
		if escrow.Balance < committed {
			return nil, domain.ErrInsufficientFunds
		}
		return escrow, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.EscrowAccount), nil
}

// committedFunds returns the sum of the highest bids held by the bidder in
// the active auctions of the marketplace.
func (s *service) committedFunds(
	ctx context.Context, bidder, marketplace address.Address,
) (uint64, error) {
	listings, err := s.repoManager.ListingConfigRepository().
		GetActiveListingConfigsByMarketplace(ctx, marketplace)
	if err != nil {
		return 0, err
	}

	committed := uint64(0)
	for _, l := range listings {
		if l.HighestBid == nil || l.HighestBid.Buyer != bidder {
			continue
		}
		if committed, err = mathutil.SafeAdd(committed, l.HighestBid.Amount); err != nil {
			return 0, domain.ErrNumericalOverflow
		}
	}
	return committed, nil
}
