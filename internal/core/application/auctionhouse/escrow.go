package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// Deposit moves amount from the signer's balance to its escrow account in
// the marketplace, creating the escrow on first use.
func (s *service) Deposit(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
	auctioneer *AuctioneerContext,
) (*domain.EscrowAccount, error) {
	res, err := s.run(ctx, "deposit", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
			return nil, err
		}

		if err := s.debit(ctx, signer, amount); err != nil {
			return nil, err
		}

		addr, bump := s.deriver.Escrow(marketplace, signer)
		var escrow *domain.EscrowAccount
		if err := s.repoManager.EscrowRepository().UpsertEscrow(
			ctx, domain.NewEscrowAccount(addr, bump, marketplace, signer),
			func(e *domain.EscrowAccount) (*domain.EscrowAccount, error) {
				if err := e.Deposit(amount); err != nil {
					return nil, err
				}
				escrow = e
				return e, nil
			},
		); err != nil {
			return nil, err
		}

		if err := s.journal(ctx, "deposit", signer, auctioneer, addr); err != nil {
			return nil, err
		}
		return escrow, nil
	})
	if err != nil {
		return nil, err
	}

	escrow := res.(*domain.EscrowAccount)
	log.WithFields(log.Fields{
		"escrow":  escrow.Address,
		"amount":  amount,
		"balance": escrow.Balance,
	}).Debug("escrow deposit")
	return escrow, nil
}

// Withdraw moves amount from the signer's escrow back to its balance.
// Outstanding bids are not taken into account, a bid whose escrow no longer
// covers its price simply fails at settlement.
func (s *service) Withdraw(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
	auctioneer *AuctioneerContext,
) (*domain.EscrowAccount, error) {
	res, err := s.run(ctx, "withdraw", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
			return nil, err
		}

		addr, _ := s.deriver.Escrow(marketplace, signer)
		escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.ErrInsufficientFunds
			}
			return nil, err
		}

		if err := s.repoManager.EscrowRepository().UpsertEscrow(
			ctx, escrow,
			func(e *domain.EscrowAccount) (*domain.EscrowAccount, error) {
				if err := e.Withdraw(amount); err != nil {
					return nil, err
				}
				escrow = e
				return e, nil
			},
		); err != nil {
			return nil, err
		}

		if err := s.credit(ctx, signer, amount); err != nil {
			return nil, err
		}

		if err := s.journal(ctx, "withdraw", signer, auctioneer, addr); err != nil {
			return nil, err
		}
		return escrow, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.EscrowAccount), nil
}

// CloseEscrow removes the signer's escrow account, only if empty.
func (s *service) CloseEscrow(
	ctx context.Context, signer, marketplace address.Address,
) error {
	_, err := s.run(ctx, "closeescrow", func(ctx context.Context) (interface{}, error) {
		addr, _ := s.deriver.Escrow(marketplace, signer)
		escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, addr)
		if err != nil {
			return nil, err
		}
		if escrow.Wallet != signer {
			return nil, domain.ErrUnauthorized
		}
		if err := escrow.CanClose(); err != nil {
			return nil, err
		}

		if err := s.repoManager.EscrowRepository().DeleteEscrow(ctx, addr); err != nil {
			return nil, err
		}
		return nil, s.journal(ctx, "closeescrow", signer, nil, addr)
	})
	return err
}
