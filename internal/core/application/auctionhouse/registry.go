package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

func (s *service) CreateMarketplace(
	ctx context.Context, signer address.Address, args domain.MarketplaceArgs,
) (*domain.Marketplace, error) {
	if args.Authority.IsZero() {
		args.Authority = signer
	}

	res, err := s.run(ctx, "createmarketplace", func(ctx context.Context) (interface{}, error) {
		addr, bump := s.deriver.Marketplace(args.Authority, args.TreasuryMint)
		feeAccount, feeBump := s.deriver.FeeAccount(addr)
		treasury, treasuryBump := s.deriver.Treasury(addr)

		marketplace, err := domain.NewMarketplace(
			args, addr, bump, feeAccount, feeBump, treasury, treasuryBump,
		)
		if err != nil {
			return nil, err
		}

		if err := s.repoManager.MarketplaceRepository().AddMarketplace(
			ctx, marketplace,
		); err != nil {
			return nil, err
		}

		if err := s.journal(
			ctx, "createmarketplace", signer, nil, addr, feeAccount, treasury,
		); err != nil {
			return nil, err
		}
		return marketplace, nil
	})
	if err != nil {
		return nil, err
	}

	marketplace := res.(*domain.Marketplace)
	log.WithFields(log.Fields{
		"marketplace": marketplace.Address,
		"authority":   marketplace.Authority,
		"fee_bps":     marketplace.FeeBasisPoints,
	}).Info("marketplace created")
	return marketplace, nil
}

func (s *service) UpdateMarketplace(
	ctx context.Context, signer, marketplace address.Address,
	update domain.MarketplaceUpdate,
) (*domain.Marketplace, error) {
	res, err := s.run(ctx, "updatemarketplace", func(ctx context.Context) (interface{}, error) {
		var updated *domain.Marketplace
		if err := s.repoManager.MarketplaceRepository().UpdateMarketplace(
			ctx, marketplace,
			func(m *domain.Marketplace) (*domain.Marketplace, error) {
				if !m.IsAuthority(signer) {
					return nil, domain.ErrUnauthorized
				}
				if err := m.Update(update); err != nil {
					return nil, err
				}
				updated = m
				return m, nil
			},
		); err != nil {
			return nil, err
		}

		if err := s.journal(ctx, "updatemarketplace", signer, nil, marketplace); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Marketplace), nil
}

func (s *service) WithdrawFromFee(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
) error {
	_, err := s.run(ctx, "withdrawfromfee", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if !m.IsAuthority(signer) {
			return nil, domain.ErrUnauthorized
		}

		return nil, s.withdrawFromPool(
			ctx, "withdrawfromfee", signer,
			m.FeeAccount, m.FeeWithdrawalDestination, amount,
		)
	})
	return err
}

func (s *service) WithdrawFromTreasury(
	ctx context.Context, signer, marketplace address.Address, amount uint64,
) error {
	_, err := s.run(ctx, "withdrawfromtreasury", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, marketplace)
		if err != nil {
			return nil, err
		}
		if !m.IsAuthority(signer) {
			return nil, domain.ErrUnauthorized
		}

		return nil, s.withdrawFromPool(
			ctx, "withdrawfromtreasury", signer,
			m.TreasuryAccount, m.TreasuryWithdrawalDestination, amount,
		)
	})
	return err
}

// withdrawFromPool moves amount from a pooled account to its destination,
// never touching the minimum reserve.
func (s *service) withdrawFromPool(
	ctx context.Context, op string, signer, pool, destination address.Address,
	amount uint64,
) error {
	account, err := s.repoManager.AssetRepository().GetNativeAccount(ctx, pool)
	if err != nil {
		return err
	}
	if amount > account.Spendable(s.minAccountReserve) {
		return domain.ErrInsufficientFunds
	}

	if err := s.debit(ctx, pool, amount); err != nil {
		return err
	}
	if err := s.credit(ctx, destination, amount); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"account":     pool,
		"destination": destination,
		"amount":      amount,
	}).Info("withdrawal from marketplace account")

	return s.journal(ctx, op, signer, nil, pool, destination)
}
