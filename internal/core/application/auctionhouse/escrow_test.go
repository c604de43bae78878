package auctionhouse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"
)

func TestEscrowLedger(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bidder := randomAddress(t)
	mkt := f.marketplace.Address

	_, err := f.svc.Deposit(ctx, bidder, mkt, sol, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = f.svc.Withdraw(ctx, bidder, mkt, 1, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	f.fund(t, bidder, 3*sol)
	escrow, err := f.svc.Deposit(ctx, bidder, mkt, 2*sol, nil)
	require.NoError(t, err)
	require.Equal(t, 2*sol, escrow.Balance)
	require.Equal(t, sol, f.balance(t, bidder))

	expected, _ := f.svc.Deriver().Escrow(mkt, bidder)
	require.Equal(t, expected, escrow.Address)

	_, err = f.svc.Withdraw(ctx, bidder, mkt, 2*sol+1, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Equal(t, 2*sol, f.escrowBalance(t, bidder))

	err = f.svc.CloseEscrow(ctx, bidder, mkt)
	require.ErrorIs(t, err, domain.ErrNotEmpty)

	escrow, err = f.svc.Withdraw(ctx, bidder, mkt, 2*sol, nil)
	require.NoError(t, err)
	require.Zero(t, escrow.Balance)
	require.Equal(t, 3*sol, f.balance(t, bidder))

	require.NoError(t, f.svc.CloseEscrow(ctx, bidder, mkt))
	_, err = f.svc.GetEscrow(ctx, mkt, bidder)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.CloseEscrow(ctx, bidder, mkt)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentDeposits(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	bidder := randomAddress(t)
	mkt := f.marketplace.Address
	numOfDeposits := 20

	f.fund(t, bidder, uint64(numOfDeposits)*sol)
	head, err := f.svc.ListJournal(ctx, 0, 0)
	require.NoError(t, err)

	eg := &errgroup.Group{}
	for i := 0; i < numOfDeposits; i++ {
		eg.Go(func() error {
			_, err := f.svc.Deposit(ctx, bidder, mkt, sol, nil)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	require.Equal(t, uint64(numOfDeposits)*sol, f.escrowBalance(t, bidder))
	require.Zero(t, f.balance(t, bidder))

	entries, err := f.svc.ListJournal(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, len(head)+numOfDeposits)
	for i, e := range entries {
		require.Equal(t, uint64(i+1), e.Sequence)
	}
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	f := newFixture(t)
	mkt := f.marketplace.Address

	rapid.Check(t, func(t *rapid.T) {
		bidder := randomAddress(t)
		initial := rapid.Uint64Range(0, 100*sol).Draw(t, "initial").(uint64)
		amount := rapid.Uint64Range(1, 100*sol).Draw(t, "amount").(uint64)

		if initial > 0 {
			_, err := f.svc.Fund(ctx, bidder, amount+initial)
			require.NoError(t, err)
			_, err = f.svc.Deposit(ctx, bidder, mkt, initial, nil)
			require.NoError(t, err)
		} else {
			_, err := f.svc.Fund(ctx, bidder, amount)
			require.NoError(t, err)
		}

		_, err := f.svc.Deposit(ctx, bidder, mkt, amount, nil)
		require.NoError(t, err)
		escrow, err := f.svc.Withdraw(ctx, bidder, mkt, amount, nil)
		require.NoError(t, err)
		require.Equal(t, initial, escrow.Balance)

		over := rapid.Uint64Range(initial+1, initial+100*sol).Draw(t, "over").(uint64)
		_, err = f.svc.Withdraw(ctx, bidder, mkt, over, nil)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)

		escrow, err = f.svc.GetEscrow(ctx, mkt, bidder)
		require.NoError(t, err)
		require.Equal(t, initial, escrow.Balance)
	})
}
