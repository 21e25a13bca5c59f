package domain

import (
	"time"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryBet        EntryType = "bet"
	EntryWin        EntryType = "win"
	EntryDeposit    EntryType = "deposit"
	EntryWithdrawal EntryType = "withdrawal"
	EntryBonus      EntryType = "bonus"
)

var validEntryTypes = map[EntryType]bool{
	EntryBet:        true,
	EntryWin:        true,
	EntryDeposit:    true,
	EntryWithdrawal: true,
	EntryBonus:      true,
}

// IsValid checks if the entry type is known.
func (t EntryType) IsValid() bool {
	return validEntryTypes[t]
}

// Entry is a single immutable ledger record. Amount is signed cents:
// negative for bet and withdrawal, positive for win, deposit and bonus.
// Entries are append-only; there is no update or delete.
type Entry struct {
	ID             string
	UserID         string
	WagerID        string
	Type           EntryType
	Amount         int64
	BalanceBefore  int64
	BalanceAfter   int64
	AccountVersion int64
	Description    string
	CreatedAt      time.Time
}

// Validate checks entry invariants before it is appended.
func (e *Entry) Validate() error {
	if e.UserID == "" {
		return ErrInvalidUserID
	}
	if !e.Type.IsValid() {
		return ErrInvalidEntryType
	}
	if e.Amount == 0 {
		return ErrInvalidAmount
	}
	switch e.Type {
	case EntryBet, EntryWithdrawal:
		if e.Amount > 0 {
			return ErrInvalidAmount
		}
	default:
		if e.Amount < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}
