package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"pgregory.net/rapid"
)

func TestEscrowAccount(t *testing.T) {
	t.Parallel()

	e := domain.NewEscrowAccount(someAddress, 255, otherAddress, authority)
	require.NoError(t, e.CanClose())

	require.NoError(t, e.Deposit(5))
	require.ErrorIs(t, e.CanClose(), domain.ErrNotEmpty)

	require.ErrorIs(t, e.Withdraw(6), domain.ErrInsufficientFunds)
	require.Equal(t, uint64(5), e.Balance)

	require.NoError(t, e.Withdraw(5))
	require.NoError(t, e.CanClose())

	require.NoError(t, e.Deposit(math.MaxUint64))
	require.ErrorIs(t, e.Deposit(1), domain.ErrNumericalOverflow)
}

func TestEscrowDepositWithdrawRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.Uint64Range(0, math.MaxUint64/2).Draw(t, "initial").(uint64)
		amount := rapid.Uint64Range(0, math.MaxUint64/2).Draw(t, "amount").(uint64)

		e := domain.NewEscrowAccount(someAddress, 255, otherAddress, authority)
		e.Balance = initial

		if err := e.Deposit(amount); err != nil {
			t.Fatal(err)
		}
		if err := e.Withdraw(amount); err != nil {
			t.Fatal(err)
		}
		if e.Balance != initial {
			t.Fatalf("expected balance %d, got %d", initial, e.Balance)
		}

		over := rapid.Uint64Range(initial+1, math.MaxUint64).Draw(t, "over").(uint64)
		if err := e.Withdraw(over); err != domain.ErrInsufficientFunds {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if e.Balance != initial {
			t.Fatalf("balance changed after failed withdrawal")
		}
	})
}
