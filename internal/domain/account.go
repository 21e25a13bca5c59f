package domain

import (
	"time"
)

// Account holds a user's balance in integer minor-currency units (cents).
// It is the single source of truth for funds; every balance mutation goes
// through the account repository inside a transaction.
type Account struct {
	ID        string
	UserID    string
	Balance   int64
	Version   int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount cents.
func (a *Account) ValidateDebit(amount int64) error {
	if !a.Active {
		return ErrAccountInactive
	}
	if a.Balance-amount < 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks if the account can be credited by amount cents.
func (a *Account) ValidateCredit(amount int64) error {
	if !a.Active {
		return ErrAccountInactive
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
