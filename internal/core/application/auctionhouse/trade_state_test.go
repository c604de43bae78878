package auctionhouse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

func TestSell(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	price, _ := address.FixedPrice(2 * sol)
	args := auctionhouse.SellArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Price:        price,
		Quantity:     1,
	}

	tests := []struct {
		name          string
		signer        address.Address
		args          func(a auctionhouse.SellArgs) auctionhouse.SellArgs
		expectedError error
	}{
		{
			name:          "not_owner",
			signer:        randomAddress(t),
			args:          func(a auctionhouse.SellArgs) auctionhouse.SellArgs { return a },
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:   "zero_quantity",
			signer: f.seller,
			args: func(a auctionhouse.SellArgs) auctionhouse.SellArgs {
				a.Quantity = 0
				return a
			},
			expectedError: domain.ErrInvalidQuantity,
		},
		{
			name:   "not_enough_tokens",
			signer: f.seller,
			args: func(a auctionhouse.SellArgs) auctionhouse.SellArgs {
				a.Quantity = 2
				return a
			},
			expectedError: domain.ErrNotEnoughTokens,
		},
		{
			name:   "unbound_without_auctioneer",
			signer: f.seller,
			args: func(a auctionhouse.SellArgs) auctionhouse.SellArgs {
				a.Price = address.Unbound()
				return a
			},
			expectedError: domain.ErrUnboundPriceRequiresAuctioneer,
		},
		{
			name:   "unknown_marketplace",
			signer: f.seller,
			args: func(a auctionhouse.SellArgs) auctionhouse.SellArgs {
				a.Marketplace = randomAddress(t)
				return a
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		_, err := f.svc.Sell(ctx, tt.signer, tt.args(args), nil)
		require.ErrorIs(t, err, tt.expectedError, tt.name)
	}

	res, err := f.svc.Sell(ctx, f.seller, args, nil)
	require.NoError(t, err)
	require.Equal(t, domain.TradeStateSell, res.Sell.Kind)
	require.Equal(t, domain.TradeStateFree, res.Free.Kind)
	require.NotEqual(t, res.Sell.Address, res.Free.Address)

	expected, _ := f.svc.Deriver().TradeState(
		f.seller, f.marketplace.Address, f.token.Address, nativeMint,
		f.token.Mint, price, 1,
	)
	require.Equal(t, expected, res.Sell.Address)

	token, err := f.svc.GetTokenAccount(ctx, f.token.Address)
	require.NoError(t, err)
	programSigner, _ := f.svc.Deriver().ProgramAsSigner()
	require.True(t, token.IsDelegatedTo(programSigner, 1))

	_, err = f.svc.Sell(ctx, f.seller, args, nil)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Another price for the same units shares the free trade state.
	other, _ := address.FixedPrice(3 * sol)
	args.Price = other
	res2, err := f.svc.Sell(ctx, f.seller, args, nil)
	require.NoError(t, err)
	require.Equal(t, res.Free.Address, res2.Free.Address)

	active, err := f.svc.ListActiveTradeStates(ctx, f.marketplace.Address)
	require.NoError(t, err)
	require.Len(t, active, 3)
}

func TestSellAtZeroPrice(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res := f.sell(t, 0)
	require.Equal(t, res.Sell.Address, res.Free.Address)
	require.Equal(t, domain.TradeStateSell, res.Sell.Kind)
}

func TestBuy(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bidder := randomAddress(t)

	buyArgs := auctionhouse.BuyArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Price:        sol,
		Quantity:     1,
	}

	_, err := f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	f.deposit(t, bidder, sol-1)
	_, err = f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	f.deposit(t, bidder, 1)
	buy, err := f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.NoError(t, err)
	require.Equal(t, domain.TradeStateBuy, buy.Kind)
	// Funds are not moved by a bid.
	require.Equal(t, sol, f.escrowBalance(t, bidder))

	_, err = f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	// A bid at another price is a distinct record.
	buyArgs.Price = sol / 2
	other, err := f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.NoError(t, err)
	require.NotEqual(t, buy.Address, other.Address)

	buyArgs.Quantity = 2
	_, err = f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.ErrorIs(t, err, domain.ErrNotEnoughTokens)

	buyArgs.Quantity = 1
	buyArgs.Price = address.UnboundPrice
	_, err = f.svc.Buy(ctx, bidder, buyArgs, nil)
	require.ErrorIs(t, err, address.ErrReservedPrice)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bidder := randomAddress(t)
	f.deposit(t, bidder, sol)

	listing := f.sell(t, sol)
	bid := f.buy(t, bidder, sol)

	tests := []struct {
		name       string
		tradeState address.Address
		owner      address.Address
	}{
		{"sell", listing.Sell.Address, f.seller},
		{"buy", bid.Address, bidder},
	}

	for _, tt := range tests {
		_, err := f.svc.Cancel(ctx, randomAddress(t), tt.tradeState, nil)
		require.ErrorIs(t, err, domain.ErrUnauthorized, tt.name)

		cancelled, err := f.svc.Cancel(ctx, tt.owner, tt.tradeState, nil)
		require.NoError(t, err, tt.name)
		require.False(t, cancelled.IsActive(), tt.name)

		_, err = f.svc.Cancel(ctx, tt.owner, tt.tradeState, nil)
		require.ErrorIs(t, err, domain.ErrStaleTradeState, tt.name)
	}

	free, err := f.svc.GetTradeState(ctx, listing.Free.Address)
	require.NoError(t, err)
	require.False(t, free.IsActive())

	token, err := f.svc.GetTokenAccount(ctx, f.token.Address)
	require.NoError(t, err)
	require.Nil(t, token.Delegate)

	_, err = f.svc.Cancel(ctx, f.seller, randomAddress(t), nil)
	require.ErrorIs(t, err, domain.ErrStaleTradeState)

	// Retired addresses can be created again.
	relisted := f.sell(t, sol)
	require.Equal(t, listing.Sell.Address, relisted.Sell.Address)
	require.Equal(t, listing.Free.Address, relisted.Free.Address)
	rebid := f.buy(t, bidder, sol)
	require.Equal(t, bid.Address, rebid.Address)
}
