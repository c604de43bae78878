package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

// NativeAccount is a plain balance of the settlement currency owned by a
// principal or by one of the marketplace pooled accounts.
type NativeAccount struct {
	Address address.Address
	Balance uint64
}

func (a *NativeAccount) Credit(amount uint64) error {
	balance, err := mathutil.SafeAdd(a.Balance, amount)
	if err != nil {
		return ErrNumericalOverflow
	}
	a.Balance = balance
	return nil
}

func (a *NativeAccount) Debit(amount uint64) error {
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

// Spendable returns the balance exceeding the given reserve.
func (a *NativeAccount) Spendable(reserve uint64) uint64 {
	return mathutil.SaturatingSub(a.Balance, reserve)
}
