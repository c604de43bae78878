package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// Sell lists quantity units held in the given token account. Along with the
// sell trade state, the zero priced free trade state is created and the
// program signer is approved to move the listed units at settlement.
func (s *service) Sell(
	ctx context.Context, signer address.Address, args SellArgs,
	auctioneer *AuctioneerContext,
) (*SellResult, error) {
	res, err := s.run(ctx, "sell", func(ctx context.Context) (interface{}, error) {
		return s.sell(ctx, signer, args, auctioneer)
	})
	if err != nil {
		return nil, err
	}

	result := res.(*SellResult)
	log.WithFields(log.Fields{
		"trade_state": result.Sell.Address,
		"price":       result.Sell.Price.Value(),
		"quantity":    result.Sell.Quantity,
		"mediated":    result.Sell.Mediated,
	}).Debug("listing created")
	return result, nil
}

func (s *service) sell(
	ctx context.Context, signer address.Address, args SellArgs,
	auctioneer *AuctioneerContext,
) (*SellResult, error) {
	m, err := s.getMarketplace(ctx, args.Marketplace)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
		return nil, err
	}
	if args.Price.Unbound && auctioneer == nil {
		return nil, domain.ErrUnboundPriceRequiresAuctioneer
	}
	if args.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	token, err := s.repoManager.AssetRepository().GetTokenAccount(ctx, args.TokenAccount)
	if err != nil {
		return nil, err
	}
	if token.Owner != signer {
		return nil, domain.ErrUnauthorized
	}
	if token.Amount < args.Quantity {
		return nil, domain.ErrNotEnoughTokens
	}

	tsArgs := domain.TradeStateArgs{
		Kind:         domain.TradeStateSell,
		Owner:        signer,
		Marketplace:  m.Address,
		TokenAccount: token.Address,
		TokenMint:    token.Mint,
		TreasuryMint: m.TreasuryMint,
		Price:        args.Price,
		Quantity:     args.Quantity,
		Mediated:     auctioneer != nil,
	}
	sell, err := s.addTradeState(ctx, tsArgs)
	if err != nil {
		return nil, err
	}

	free := sell
	if !isFree(sell.Price) {
		freeArgs := tsArgs
		freeArgs.Kind = domain.TradeStateFree
		freeArgs.Price = address.PriceSeed{}
		freeArgs.Mediated = false
		if free, err = s.addTradeState(ctx, freeArgs); err != nil {
			if err != domain.ErrAlreadyExists {
				return nil, err
			}
			// Listings of the same units at different prices share the free
			// trade state.
			addr, _ := s.tradeStateAddress(freeArgs)
			if free, err = s.repoManager.TradeStateRepository().GetTradeState(
				ctx, addr,
			); err != nil {
				return nil, err
			}
		}
	}

	programSigner, _ := s.deriver.ProgramAsSigner()
	if err := s.repoManager.AssetRepository().UpsertTokenAccount(
		ctx, token,
		func(t *domain.TokenAccount) (*domain.TokenAccount, error) {
			if err := t.Approve(programSigner, args.Quantity); err != nil {
				return nil, err
			}
			return t, nil
		},
	); err != nil {
		return nil, err
	}

	if err := s.journal(
		ctx, "sell", signer, auctioneer, sell.Address, free.Address, token.Address,
	); err != nil {
		return nil, err
	}
	return &SellResult{Sell: sell, Free: free}, nil
}

// Buy records a bid for the units held by the seller's token account. The
// bidder's escrow must cover the price but funds are not moved until
// settlement.
func (s *service) Buy(
	ctx context.Context, signer address.Address, args BuyArgs,
	auctioneer *AuctioneerContext,
) (*domain.TradeState, error) {
	res, err := s.run(ctx, "buy", func(ctx context.Context) (interface{}, error) {
		m, err := s.getMarketplace(ctx, args.Marketplace)
		if err != nil {
			return nil, err
		}
		if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
			return nil, err
		}
		if args.Quantity == 0 {
			return nil, domain.ErrInvalidQuantity
		}

		price, err := address.FixedPrice(args.Price)
		if err != nil {
			return nil, err
		}

		token, err := s.repoManager.AssetRepository().GetTokenAccount(
			ctx, args.TokenAccount,
		)
		if err != nil {
			return nil, err
		}
		if token.Amount < args.Quantity {
			return nil, domain.ErrNotEnoughTokens
		}

		escrowAddr, _ := s.deriver.Escrow(m.Address, signer)
		escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, escrowAddr)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.ErrInsufficientFunds
			}
			return nil, err
		}
		if escrow.Balance < args.Price {
			return nil, domain.ErrInsufficientFunds
		}

		buy, err := s.addTradeState(ctx, domain.TradeStateArgs{
			Kind:         domain.TradeStateBuy,
			Owner:        signer,
			Marketplace:  m.Address,
			TokenAccount: token.Address,
			TokenMint:    token.Mint,
			TreasuryMint: m.TreasuryMint,
			Price:        price,
			Quantity:     args.Quantity,
			Mediated:     auctioneer != nil,
		})
		if err != nil {
			return nil, err
		}

		if err := s.journal(
			ctx, "buy", signer, auctioneer, buy.Address, escrowAddr,
		); err != nil {
			return nil, err
		}
		return buy, nil
	})
	if err != nil {
		return nil, err
	}

	buy := res.(*domain.TradeState)
	log.WithFields(log.Fields{
		"trade_state": buy.Address,
		"price":       buy.Price.Amount,
		"quantity":    buy.Quantity,
	}).Debug("bid created")
	return buy, nil
}

// Cancel retires a trade state owned by the signer. Cancelling the last
// listing of some units also retires their free trade state and revokes the
// program signer.
func (s *service) Cancel(
	ctx context.Context, signer, tradeState address.Address,
	auctioneer *AuctioneerContext,
) (*domain.TradeState, error) {
	res, err := s.run(ctx, "cancel", func(ctx context.Context) (interface{}, error) {
		ts, err := s.getActiveTradeState(ctx, tradeState)
		if err != nil {
			return nil, err
		}

		m, err := s.getMarketplace(ctx, ts.Marketplace)
		if err != nil {
			return nil, err
		}
		if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
			return nil, err
		}
		if ts.Mediated && auctioneer == nil {
			return nil, domain.ErrNotAuthorized
		}
		if !ts.IsOwner(signer) {
			return nil, domain.ErrUnauthorized
		}

		if err := s.retireTradeState(ctx, ts.Address); err != nil {
			return nil, err
		}
		ts.Status = domain.StatusRetired

		accounts := []address.Address{ts.Address}
		if ts.Kind == domain.TradeStateSell {
			released, err := s.releaseListing(ctx, ts)
			if err != nil {
				return nil, err
			}
			accounts = append(accounts, released...)
		}
		if err := s.journal(ctx, "cancel", signer, auctioneer, accounts...); err != nil {
			return nil, err
		}
		return ts, nil
	})
	if err != nil {
		return nil, err
	}

	ts := res.(*domain.TradeState)
	log.WithFields(log.Fields{
		"trade_state": ts.Address,
		"kind":        ts.Kind,
	}).Debug("trade state cancelled")
	return ts, nil
}

// releaseListing retires the free trade state of a cancelled listing and
// revokes the program signer, unless other listings of the same units still
// need them.
func (s *service) releaseListing(
	ctx context.Context, sell *domain.TradeState,
) ([]address.Address, error) {
	shared, err := s.hasOtherListings(ctx, sell)
	if err != nil || shared {
		return nil, err
	}

	var released []address.Address
	if !isFree(sell.Price) {
		freeAddr, _ := s.tradeStateAddress(freeArgsOf(sell))
		if err := s.retireTradeState(
			ctx, freeAddr,
		); err != nil && err != domain.ErrNotFound &&
			err != domain.ErrStaleTradeState {
			return nil, err
		}
		released = append(released, freeAddr)
	}

	if err := s.repoManager.AssetRepository().UpsertTokenAccount(
		ctx, domain.NewTokenAccount(sell.TokenAccount, sell.Owner, sell.TokenMint),
		func(t *domain.TokenAccount) (*domain.TokenAccount, error) {
			t.Revoke()
			return t, nil
		},
	); err != nil {
		return nil, err
	}
	return append(released, sell.TokenAccount), nil
}

// hasOtherListings tells whether any active listing other than the given
// one is backed by the same token account.
func (s *service) hasOtherListings(
	ctx context.Context, sell *domain.TradeState,
) (bool, error) {
	active, err := s.repoManager.TradeStateRepository().
		GetActiveTradeStatesByMarketplace(ctx, sell.Marketplace)
	if err != nil {
		return false, err
	}
	for _, ts := range active {
		if ts.Kind == domain.TradeStateSell && ts.Address != sell.Address &&
			ts.TokenAccount == sell.TokenAccount {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) addTradeState(
	ctx context.Context, args domain.TradeStateArgs,
) (*domain.TradeState, error) {
	addr, bump := s.tradeStateAddress(args)
	ts, err := domain.NewTradeState(args, addr, bump, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.TradeStateRepository().AddTradeState(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// getActiveTradeState returns the trade state at the given address after
// checking that it's active and that its address matches its derivation.
func (s *service) getActiveTradeState(
	ctx context.Context, addr address.Address,
) (*domain.TradeState, error) {
	ts, err := s.repoManager.TradeStateRepository().GetTradeState(ctx, addr)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrStaleTradeState
		}
		return nil, err
	}
	if !ts.IsActive() {
		return nil, domain.ErrStaleTradeState
	}
	if expected, _ := s.tradeStateAddress(argsOf(ts)); expected != addr {
		return nil, domain.ErrDerivedKeyInvalid
	}
	return ts, nil
}

func (s *service) retireTradeState(ctx context.Context, addr address.Address) error {
	return s.repoManager.TradeStateRepository().UpdateTradeState(
		ctx, addr,
		func(t *domain.TradeState) (*domain.TradeState, error) {
			if err := t.Retire(); err != nil {
				return nil, err
			}
			return t, nil
		},
	)
}

func (s *service) tradeStateAddress(args domain.TradeStateArgs) (address.Address, uint8) {
	return s.deriver.TradeState(
		args.Owner, args.Marketplace, args.TokenAccount, args.TreasuryMint,
		args.TokenMint, args.Price, args.Quantity,
	)
}

func argsOf(ts *domain.TradeState) domain.TradeStateArgs {
	return domain.TradeStateArgs{
		Kind:         ts.Kind,
		Owner:        ts.Owner,
		Marketplace:  ts.Marketplace,
		TokenAccount: ts.TokenAccount,
		TokenMint:    ts.TokenMint,
		TreasuryMint: ts.TreasuryMint,
		Price:        ts.Price,
		Quantity:     ts.Quantity,
		Mediated:     ts.Mediated,
	}
}

func freeArgsOf(sell *domain.TradeState) domain.TradeStateArgs {
	args := argsOf(sell)
	args.Kind = domain.TradeStateFree
	args.Price = address.PriceSeed{}
	args.Mediated = false
	return args
}

func isFree(price address.PriceSeed) bool {
	return !price.Unbound && price.Amount == 0
}
