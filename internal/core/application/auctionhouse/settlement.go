package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
	"github.com/tdex-network/auction-house/pkg/stats"
)

// ExecuteSale matches a listing with a bid. The price is taken from the
// buyer's escrow, the marketplace fee goes to the fee account and what's left
// is split among the royalty recipients, with any rounding dust going to the
// seller. The listed units move to the buyer's associated token account and
// the sell and buy trade states are retired, along with the free trade state
// if still active.
func (s *service) ExecuteSale(
	ctx context.Context, signer address.Address, args ExecuteSaleArgs,
	auctioneer *AuctioneerContext,
) (*domain.SaleReceipt, error) {
	res, err := s.run(ctx, "executesale", func(ctx context.Context) (interface{}, error) {
		return s.executeSale(ctx, signer, args, auctioneer)
	})
	if err != nil {
		return nil, err
	}

	receipt := res.(*domain.SaleReceipt)
	stats.ObserveSale(receipt.Marketplace.String(), receipt.Price, receipt.Fee)
	log.WithFields(log.Fields{
		"receipt":    receipt.ID,
		"price":      receipt.Price,
		"fee":        receipt.Fee,
		"royalties":  receipt.RoyaltyTotal(),
		"seller_net": receipt.SellerNet,
	}).Info("sale executed")
	return receipt, nil
}

func (s *service) executeSale(
	ctx context.Context, signer address.Address, args ExecuteSaleArgs,
	auctioneer *AuctioneerContext,
) (*domain.SaleReceipt, error) {
	m, err := s.getMarketplace(ctx, args.Marketplace)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuctioneer(ctx, m, auctioneer); err != nil {
		return nil, err
	}

	sell, err := s.getActiveTradeState(ctx, args.SellTradeState)
	if err != nil {
		return nil, err
	}
	buy, err := s.getActiveTradeState(ctx, args.BuyTradeState)
	if err != nil {
		return nil, err
	}
	if err := s.checkPair(m, signer, sell, buy, args); err != nil {
		return nil, err
	}
	if (sell.Mediated || buy.Mediated) && auctioneer == nil {
		return nil, domain.ErrNotAuthorized
	}

	// The free trade state is shared by every listing of the same units, so
	// cancelling one of them may have retired it already.
	var free *domain.TradeState
	if isFree(sell.Price) {
		free = sell
	} else {
		freeAddr, _ := s.tradeStateAddress(freeArgsOf(sell))
		if free, err = s.getActiveTradeState(ctx, freeAddr); err != nil {
			if err != domain.ErrStaleTradeState {
				return nil, err
			}
			free = nil
		}
	}

	royalties, err := s.royaltiesOf(ctx, sell, args.Royalties)
	if err != nil {
		return nil, err
	}

	fee := m.Fee(args.Price)
	pool := args.Price - fee
	parts, sellerNet := []uint64{}, pool
	if len(royalties) > 0 {
		shares := make([]uint8, 0, len(royalties))
		for _, r := range royalties {
			shares = append(shares, r.Share)
		}
		if parts, sellerNet, err = mathutil.SplitByShares(pool, shares); err != nil {
			return nil, domain.ErrInvalidRoyaltySplit
		}
	}

	// Funds.
	escrowAddr, _ := s.deriver.Escrow(m.Address, buy.Owner)
	escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, escrowAddr)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, err
	}
	if err := s.repoManager.EscrowRepository().UpsertEscrow(
		ctx, escrow,
		func(e *domain.EscrowAccount) (*domain.EscrowAccount, error) {
			if err := e.Withdraw(args.Price); err != nil {
				return nil, err
			}
			return e, nil
		},
	); err != nil {
		return nil, err
	}

	receipt := domain.NewSaleReceipt(sell, buy, args.Price, s.now())
	receipt.Fee = fee
	receipt.SellerNet = sellerNet

	if err := s.credit(ctx, m.FeeAccount, fee); err != nil {
		return nil, err
	}
	for i, r := range royalties {
		if parts[i] == 0 {
			continue
		}
		if err := s.credit(ctx, r.Address, parts[i]); err != nil {
			return nil, err
		}
		receipt.Royalties = append(receipt.Royalties, domain.Payout{
			Address: r.Address,
			Amount:  parts[i],
		})
	}
	if err := s.credit(ctx, sell.Owner, sellerNet); err != nil {
		return nil, err
	}

	// Tokens.
	buyerTokenAccount, err := s.transferTokens(ctx, sell, buy)
	if err != nil {
		return nil, err
	}

	// Trade states.
	retired := []address.Address{sell.Address, buy.Address}
	if free != nil && free != sell {
		retired = append(retired, free.Address)
	}
	for _, addr := range retired {
		if err := s.retireTradeState(ctx, addr); err != nil {
			return nil, err
		}
	}

	if err := s.repoManager.ReceiptRepository().AddReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	accounts := append(
		retired, escrowAddr, m.FeeAccount, sell.TokenAccount, buyerTokenAccount,
	)
	if err := s.journal(ctx, "executesale", signer, auctioneer, accounts...); err != nil {
		return nil, err
	}
	return receipt, nil
}

// checkPair makes sure that listing and bid refer to the same units and
// agree on the settlement price.
func (s *service) checkPair(
	m *domain.Marketplace, signer address.Address, sell, buy *domain.TradeState,
	args ExecuteSaleArgs,
) error {
	if sell.Kind != domain.TradeStateSell || buy.Kind != domain.TradeStateBuy {
		return domain.ErrMismatch
	}
	if sell.Marketplace != m.Address || !sell.MatchesAsset(buy) ||
		sell.TokenAccount != buy.TokenAccount || sell.Owner == buy.Owner {
		return domain.ErrMismatch
	}
	if args.Quantity != buy.Quantity || args.Price != buy.Price.Amount {
		return domain.ErrMismatch
	}

	if !sell.Price.Unbound && sell.Price.Amount != args.Price {
		if !m.CanChangeSalePrice || !m.IsAuthority(signer) {
			return domain.ErrPriceChangeNotAllowed
		}
	}
	if args.Price == 0 && !m.IsAuthority(signer) && signer != sell.Owner {
		return domain.ErrFreeSaleRequiresSignoff
	}
	return nil
}

// royaltiesOf returns the given royalty shares, or those of the asset
// metadata if none are given. An empty result means that the whole pool goes
// to the seller.
func (s *service) royaltiesOf(
	ctx context.Context, sell *domain.TradeState, royalties []domain.RoyaltyShare,
) ([]domain.RoyaltyShare, error) {
	if len(royalties) == 0 {
		metadata, err := s.repoManager.AssetRepository().GetMetadataByMint(
			ctx, sell.TokenMint,
		)
		if err != nil && err != domain.ErrNotFound {
			return nil, err
		}
		if metadata != nil {
			royalties = metadata.Creators
		}
	}
	if len(royalties) == 0 {
		return nil, nil
	}

	if err := domain.ValidateShares(royalties); err != nil {
		return nil, err
	}
	return royalties, nil
}

// transferTokens moves the listed units to the buyer's associated token
// account through the program signer approved at listing time.
func (s *service) transferTokens(
	ctx context.Context, sell, buy *domain.TradeState,
) (address.Address, error) {
	assets := s.repoManager.AssetRepository()
	programSigner, _ := s.deriver.ProgramAsSigner()

	from, err := assets.GetTokenAccount(ctx, sell.TokenAccount)
	if err != nil {
		return address.Zero, err
	}

	destAddr, _ := s.deriver.AssociatedTokenAccount(buy.Owner, sell.TokenMint)
	to, err := assets.GetTokenAccount(ctx, destAddr)
	if err != nil {
		if err != domain.ErrNotFound {
			return address.Zero, err
		}
		to = domain.NewTokenAccount(destAddr, buy.Owner, sell.TokenMint)
	}

	if err := from.TransferByDelegate(programSigner, to, sell.Quantity); err != nil {
		return address.Zero, err
	}

	for _, account := range []*domain.TokenAccount{from, to} {
		account := account
		if err := assets.UpsertTokenAccount(
			ctx, account,
			func(*domain.TokenAccount) (*domain.TokenAccount, error) {
				return account, nil
			},
		); err != nil {
			return address.Zero, err
		}
	}
	return destAddr, nil
}
