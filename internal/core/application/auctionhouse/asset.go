package auctionhouse

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

// ImportAsset records an asset produced by the external minter: its metadata
// and the signer's associated token account holding the whole supply.
func (s *service) ImportAsset(
	ctx context.Context, signer address.Address, args ImportAssetArgs,
) (*domain.TokenAccount, error) {
	res, err := s.run(ctx, "importasset", func(ctx context.Context) (interface{}, error) {
		if args.Supply == 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if args.MaxSupply != nil && args.Supply > *args.MaxSupply {
			return nil, domain.ErrInvalidQuantity
		}
		if args.SellerFeeBasisPoints > domain.MaxBasisPoints {
			return nil, domain.ErrInvalidBasisPoints
		}
		if len(args.Creators) > 0 {
			if err := domain.ValidateShares(args.Creators); err != nil {
				return nil, err
			}
		}

		metadataAddr, _ := s.deriver.Metadata(args.Mint)
		if err := s.repoManager.AssetRepository().AddMetadata(ctx, &domain.AssetMetadata{
			Address:              metadataAddr,
			Mint:                 args.Mint,
			Name:                 args.Name,
			Symbol:               args.Symbol,
			URI:                  args.URI,
			SellerFeeBasisPoints: args.SellerFeeBasisPoints,
			Creators:             args.Creators,
			MaxSupply:            args.MaxSupply,
		}); err != nil {
			return nil, err
		}

		tokenAddr, _ := s.deriver.AssociatedTokenAccount(signer, args.Mint)
		account := domain.NewTokenAccount(tokenAddr, signer, args.Mint)
		account.Amount = args.Supply
		if err := s.repoManager.AssetRepository().AddTokenAccount(
			ctx, account,
		); err != nil {
			return nil, err
		}

		if err := s.journal(
			ctx, "importasset", signer, nil, metadataAddr, tokenAddr,
		); err != nil {
			return nil, err
		}
		return account, nil
	})
	if err != nil {
		return nil, err
	}

	account := res.(*domain.TokenAccount)
	log.WithFields(log.Fields{
		"mint":          account.Mint,
		"token_account": account.Address,
		"supply":        account.Amount,
	}).Info("asset imported")
	return account, nil
}

// Fund credits the given account out of thin air. It's the faucet of a
// development ledger.
func (s *service) Fund(
	ctx context.Context, addr address.Address, amount uint64,
) (*domain.NativeAccount, error) {
	res, err := s.run(ctx, "fund", func(ctx context.Context) (interface{}, error) {
		if err := s.credit(ctx, addr, amount); err != nil {
			return nil, err
		}
		if err := s.journal(ctx, "fund", addr, nil, addr); err != nil {
			return nil, err
		}
		return s.repoManager.AssetRepository().GetNativeAccount(ctx, addr)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.NativeAccount), nil
}
