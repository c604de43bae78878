package domain

import (
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/mathutil"
)

// EscrowAccount holds the funds a bidder committed to a marketplace.
type EscrowAccount struct {
	Address     address.Address
	Bump        uint8
	Marketplace address.Address
	Wallet      address.Address
	Balance     uint64
}

func NewEscrowAccount(
	addr address.Address, bump uint8, marketplace, wallet address.Address,
) *EscrowAccount {
	return &EscrowAccount{
		Address:     addr,
		Bump:        bump,
		Marketplace: marketplace,
		Wallet:      wallet,
	}
}

func (e *EscrowAccount) Deposit(amount uint64) error {
	balance, err := mathutil.SafeAdd(e.Balance, amount)
	if err != nil {
		return ErrNumericalOverflow
	}
	e.Balance = balance
	return nil
}

func (e *EscrowAccount) Withdraw(amount uint64) error {
	if amount > e.Balance {
		return ErrInsufficientFunds
	}
	e.Balance -= amount
	return nil
}

func (e *EscrowAccount) CanClose() error {
	if e.Balance != 0 {
		return ErrNotEmpty
	}
	return nil
}
