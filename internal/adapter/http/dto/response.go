package dto

import (
	"fmt"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// BetResponse represents a settled roulette bet in API responses.
// CurrentBalance reflects the balance after settlement for both wins and
// losses, so clients never need a follow-up balance read.
type BetResponse struct {
	Result         string `json:"result"`
	Card           string `json:"card"`
	WinAmount      int64  `json:"win_amount"`
	CurrentBalance int64  `json:"current_balance"`
	Message        string `json:"message"`
}

// BetFromResult converts a wager result to a response.
func BetFromResult(res *usecase.WagerResult) *BetResponse {
	resp := &BetResponse{
		Card:           res.Outcome.Label,
		WinAmount:      res.Wager.Payout,
		CurrentBalance: res.Wager.ResultBalance,
	}

	if res.Outcome.IsWin() {
		resp.Result = "win"
		resp.Message = fmt.Sprintf("Você ganhou %s!", FormatReais(res.Wager.Payout))
	} else {
		resp.Result = "lose"
		resp.Message = "Você perdeu. Tente novamente!"
	}

	return resp
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	Version   int64     `json:"version"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Balance:   a.Balance,
		Version:   a.Version,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// StatsResponse represents a user's wagering aggregates.
type StatsResponse struct {
	TotalBets    int64 `json:"total_bets"`
	TotalWins    int64 `json:"total_wins"`
	TotalLosses  int64 `json:"total_losses"`
	TotalWagered int64 `json:"total_wagered"`
	TotalProfit  int64 `json:"total_profit"`
}

// StatsFromDomain converts domain stats to a response.
func StatsFromDomain(s *domain.UserStats) *StatsResponse {
	return &StatsResponse{
		TotalBets:    s.TotalBets,
		TotalWins:    s.TotalWins,
		TotalLosses:  s.TotalLosses,
		TotalWagered: s.TotalWagered,
		TotalProfit:  s.TotalProfit,
	}
}

// MeResponse combines account and stats for the profile endpoint.
type MeResponse struct {
	Account *AccountResponse `json:"account"`
	Stats   *StatsResponse   `json:"stats"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string    `json:"id"`
	WagerID       string    `json:"wager_id,omitempty"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		WagerID:       e.WagerID,
		Type:          string(e.Type),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// RankRowResponse represents one leaderboard position.
type RankRowResponse struct {
	Position    int    `json:"position"`
	UserID      string `json:"user_id"`
	Balance     int64  `json:"balance"`
	TotalProfit int64  `json:"total_profit"`
}

// RankingFromDomain converts leaderboard rows to responses, assigning
// 1-based positions in the stored order.
func RankingFromDomain(rows []*domain.RankRow) []*RankRowResponse {
	result := make([]*RankRowResponse, len(rows))
	for i, row := range rows {
		result[i] = &RankRowResponse{
			Position:    i + 1,
			UserID:      row.UserID,
			Balance:     row.Balance,
			TotalProfit: row.TotalProfit,
		}
	}
	return result
}

// WagerResponse represents a wager record in API responses.
type WagerResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Stake         int64     `json:"stake"`
	Outcome       string    `json:"outcome"`
	Payout        int64     `json:"payout"`
	ResultBalance int64     `json:"result_balance"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
}

// WagerFromDomain converts a domain wager to a response.
func WagerFromDomain(w *domain.Wager) *WagerResponse {
	return &WagerResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		Stake:         w.Stake,
		Outcome:       w.Outcome,
		Payout:        w.Payout,
		ResultBalance: w.ResultBalance,
		State:         string(w.State),
		CreatedAt:     w.CreatedAt,
	}
}

// WagersFromDomain converts domain wagers to responses.
func WagersFromDomain(wagers []*domain.Wager) []*WagerResponse {
	result := make([]*WagerResponse, len(wagers))
	for i, w := range wagers {
		result[i] = WagerFromDomain(w)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FormatReais renders integer cents as a BRL amount for user-facing messages.
func FormatReais(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("R$ %s%d,%02d", sign, cents/100, cents%100)
}
