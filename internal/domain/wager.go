package domain

import (
	"time"
)

// WagerState tracks a wager through its lifecycle. Only settled or rejected
// are terminal; a wager is persisted only once it reaches StateSettled.
type WagerState string

const (
	StateInitiated     WagerState = "initiated"
	StateFundsReserved WagerState = "funds_reserved"
	StateOutcomeDrawn  WagerState = "outcome_drawn"
	StateSettled       WagerState = "settled"
	StateRejected      WagerState = "rejected"
)

// Wager is one complete bet-and-resolve cycle. Immutable once committed:
// either the debit, the draw and the settlement all persisted together,
// or nothing did.
type Wager struct {
	ID            string
	UserID        string
	Stake         int64
	Outcome       string
	Payout        int64
	ResultBalance int64
	State         WagerState
	CreatedAt     time.Time
}

// Validate checks wager invariants before persistence.
func (w *Wager) Validate() error {
	if w.UserID == "" {
		return ErrInvalidUserID
	}
	if w.Stake <= 0 {
		return ErrInvalidStake
	}
	if w.Payout < 0 {
		return ErrInvalidAmount
	}
	if w.Outcome == "" {
		return ErrUnknownOutcome
	}
	return nil
}
