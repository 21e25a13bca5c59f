package domain

import (
	"time"
)

// UserStats is a running aggregate over a user's ledger history, maintained
// in the same transaction as the wager so the ranking projector never has to
// rescan the ledger. TotalProfit follows the ledger sign convention: credits
// (win, deposit) add, debits (bet, withdrawal) subtract.
type UserStats struct {
	UserID       string
	TotalBets    int64
	TotalWins    int64
	TotalLosses  int64
	TotalWagered int64
	TotalProfit  int64
	UpdatedAt    time.Time
}

// RankRow is one leaderboard position. Ordering is total profit descending,
// balance descending, then userID ascending so ties are deterministic.
type RankRow struct {
	UserID      string
	Balance     int64
	TotalProfit int64
}
