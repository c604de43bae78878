package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

// TokenAccount holds units of an asset for an owner. A delegate may move up
// to DelegatedAmount units on the owner's behalf.
type TokenAccount struct {
	Address         address.Address
	Owner           address.Address
	Mint            address.Address
	Amount          uint64
	Delegate        *address.Address
	DelegatedAmount uint64
}

func NewTokenAccount(addr, owner, mint address.Address) *TokenAccount {
	return &TokenAccount{
		Address: addr,
		Owner:   owner,
		Mint:    mint,
	}
}

// Approve lets delegate move up to amount units.
func (t *TokenAccount) Approve(delegate address.Address, amount uint64) error {
	if amount > t.Amount {
		return ErrNotEnoughTokens
	}
	d := delegate
	t.Delegate = &d
	t.DelegatedAmount = amount
	return nil
}

func (t *TokenAccount) Revoke() {
	t.Delegate = nil
	t.DelegatedAmount = 0
}

func (t *TokenAccount) IsDelegatedTo(delegate address.Address, amount uint64) bool {
	return t.Delegate != nil && *t.Delegate == delegate && t.DelegatedAmount >= amount
}

// TransferByDelegate moves amount units to dest on behalf of the owner,
// consuming the delegated allowance.
func (t *TokenAccount) TransferByDelegate(
	delegate address.Address, dest *TokenAccount, amount uint64,
) error {
	if !t.IsDelegatedTo(delegate, amount) {
		return ErrDelegateMissing
	}
	if t.Mint != dest.Mint {
		return ErrMismatch
	}
	if amount > t.Amount {
		return ErrNotEnoughTokens
	}
	destAmount, err := mathutil.SafeAdd(dest.Amount, amount)
	if err != nil {
		return ErrNumericalOverflow
	}

	t.Amount -= amount
	t.DelegatedAmount -= amount
	if t.DelegatedAmount == 0 {
		t.Delegate = nil
	}
	dest.Amount = destAmount
	return nil
}
