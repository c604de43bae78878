package auctioneer

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// Sell lists the units with an unbound price and opens the auction with the
// given timing.
func (s *service) Sell(
	ctx context.Context, signer address.Address, args SellArgs,
) (*SellResult, error) {
	res, err := s.run(ctx, "sell", func(ctx context.Context) (interface{}, error) {
		if args.Timing.EndTime <= args.Timing.StartTime {
			return nil, domain.ErrInvalidTiming
		}

		ac, err := s.authorityContext(ctx, args.Marketplace)
		if err != nil {
			return nil, err
		}

		listed, err := s.auctionHouse.Sell(ctx, signer, auctionhouse.SellArgs{
			Marketplace:  args.Marketplace,
			TokenAccount: args.TokenAccount,
			Price:        address.Unbound(),
			Quantity:     args.Quantity,
		}, ac)
		if err != nil {
			return nil, err
		}

		addr, bump := s.listingConfigAddress(listed.Sell)
		listing, err := domain.NewListingConfig(addr, bump, listed.Sell, args.Timing)
		if err != nil {
			return nil, err
		}
		if err := s.repoManager.ListingConfigRepository().AddListingConfig(
			ctx, listing,
		); err != nil {
			return nil, err
		}

		return &SellResult{listed.Sell, listed.Free, listing}, nil
	})
	if err != nil {
		return nil, err
	}

	result := res.(*SellResult)
	log.WithFields(log.Fields{
		"listing":    result.Listing.Address,
		"start_time": result.Listing.StartTime,
		"end_time":   result.Listing.EndTime,
		"reserve":    result.Listing.ReservePrice,
	}).Info("auction opened")
	return result, nil
}

// Buy places a bid on an open auction. The bid must meet the reserve price
// and beat the highest bid by at least the minimum increment. A bid placed
// close to the end extends the auction.
func (s *service) Buy(
	ctx context.Context, signer address.Address, args BuyArgs,
) (*BuyResult, error) {
	res, err := s.run(ctx, "buy", func(ctx context.Context) (interface{}, error) {
		ac, err := s.authorityContext(ctx, args.Marketplace)
		if err != nil {
			return nil, err
		}

		listing, err := s.listingOf(ctx, args.Marketplace, args.TokenAccount, args.Quantity)
		if err != nil {
			return nil, err
		}
		now := s.now()
		if err := listing.ValidateBid(now, args.Price); err != nil {
			return nil, err
		}

		buy, err := s.auctionHouse.Buy(ctx, signer, auctionhouse.BuyArgs{
			Marketplace:  args.Marketplace,
			TokenAccount: args.TokenAccount,
			Price:        args.Price,
			Quantity:     args.Quantity,
		}, ac)
		if err != nil {
			return nil, err
		}

		extended, err := listing.PlaceBid(now, domain.Bid{
			Amount:          args.Price,
			Buyer:           signer,
			BuyerTradeState: buy.Address,
		})
		if err != nil {
			return nil, err
		}
		if err := s.repoManager.ListingConfigRepository().UpdateListingConfig(
			ctx, listing.Address,
			func(*domain.ListingConfig) (*domain.ListingConfig, error) {
				return listing, nil
			},
		); err != nil {
			return nil, err
		}

		return &BuyResult{buy, listing, extended}, nil
	})
	if err != nil {
		return nil, err
	}

	result := res.(*BuyResult)
	entry := log.WithFields(log.Fields{
		"listing": result.Listing.Address,
		"bid":     result.Buy.Price.Amount,
	})
	if result.Extended {
		entry = entry.WithField("end_time", result.Listing.EndTime)
	}
	entry.Debug("bid placed")
	return result, nil
}

// Cancel retires a listing or a bid. The highest bid of an active auction
// can't be cancelled. Cancelling the listing closes the auction.
func (s *service) Cancel(
	ctx context.Context, signer, tradeState address.Address,
) (*domain.TradeState, error) {
	res, err := s.run(ctx, "cancel", func(ctx context.Context) (interface{}, error) {
		ts, err := s.auctionHouse.GetTradeState(ctx, tradeState)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.ErrStaleTradeState
			}
			return nil, err
		}
		ac, err := s.authorityContext(ctx, ts.Marketplace)
		if err != nil {
			return nil, err
		}

		listing, err := s.listingOf(ctx, ts.Marketplace, ts.TokenAccount, ts.Quantity)
		if err != nil && err != domain.ErrNotFound {
			return nil, err
		}
		if listing != nil && listing.IsActive() &&
			ts.Kind == domain.TradeStateBuy && listing.IsHighestBid(ts.Address) {
			return nil, domain.ErrCannotCancelHighestBid
		}

		cancelled, err := s.auctionHouse.Cancel(ctx, signer, tradeState, ac)
		if err != nil {
			return nil, err
		}

		if listing != nil && ts.Kind == domain.TradeStateSell {
			if err := s.retireListing(ctx, listing.Address); err != nil {
				return nil, err
			}
		}
		return cancelled, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.TradeState), nil
}

// ExecuteSale settles an ended auction with its highest bid.
func (s *service) ExecuteSale(
	ctx context.Context, signer address.Address, args auctionhouse.ExecuteSaleArgs,
) (*domain.SaleReceipt, error) {
	res, err := s.run(ctx, "executesale", func(ctx context.Context) (interface{}, error) {
		ac, err := s.authorityContext(ctx, args.Marketplace)
		if err != nil {
			return nil, err
		}

		sell, err := s.auctionHouse.GetTradeState(ctx, args.SellTradeState)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.ErrStaleTradeState
			}
			return nil, err
		}
		addr, _ := s.listingConfigAddress(sell)
		listing, err := s.repoManager.ListingConfigRepository().GetListingConfig(ctx, addr)
		if err != nil {
			return nil, err
		}
		if !listing.IsActive() {
			return nil, domain.ErrStaleTradeState
		}
		if !listing.HasEnded(s.now()) {
			return nil, domain.ErrAuctionActive
		}
		if !listing.IsHighestBid(args.BuyTradeState) {
			return nil, domain.ErrNotHighestBidder
		}

		receipt, err := s.auctionHouse.ExecuteSale(ctx, signer, args, ac)
		if err != nil {
			return nil, err
		}
		if err := s.retireListing(ctx, listing.Address); err != nil {
			return nil, err
		}
		return receipt, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.SaleReceipt), nil
}

// listingOf returns the listing config of the units held by the given token
// account.
func (s *service) listingOf(
	ctx context.Context, marketplace, tokenAccount address.Address, quantity uint64,
) (*domain.ListingConfig, error) {
	m, err := s.auctionHouse.GetMarketplace(ctx, marketplace)
	if err != nil {
		return nil, err
	}
	token, err := s.auctionHouse.GetTokenAccount(ctx, tokenAccount)
	if err != nil {
		return nil, err
	}

	addr, _ := s.deriver.ListingConfig(
		token.Owner, marketplace, tokenAccount, m.TreasuryMint, token.Mint, quantity,
	)
	return s.repoManager.ListingConfigRepository().GetListingConfig(ctx, addr)
}

func (s *service) listingConfigAddress(sell *domain.TradeState) (address.Address, uint8) {
	return s.deriver.ListingConfig(
		sell.Owner, sell.Marketplace, sell.TokenAccount, sell.TreasuryMint,
		sell.TokenMint, sell.Quantity,
	)
}

func (s *service) retireListing(ctx context.Context, addr address.Address) error {
	return s.repoManager.ListingConfigRepository().UpdateListingConfig(
		ctx, addr,
		func(l *domain.ListingConfig) (*domain.ListingConfig, error) {
			l.Retire()
			return l, nil
		},
	)
}
