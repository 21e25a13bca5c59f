package dto

import (
	"github.com/berrybet/wagerd/internal/usecase"
)

// PlaceBetRequest represents a roulette bet. Amounts are integer cents.
type PlaceBetRequest struct {
	BetAmount int64 `json:"bet_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *PlaceBetRequest) ToUseCaseInput(userID string) usecase.PlaceWagerInput {
	return usecase.PlaceWagerInput{
		UserID: userID,
		Stake:  r.BetAmount,
	}
}

// CreateAccountRequest represents a request to open a wagering account.
type CreateAccountRequest struct {
	UserID         string `json:"user_id"`
	InitialBalance int64  `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:         r.UserID,
		InitialBalance: r.InitialBalance,
	}
}

// AdjustmentRequest represents a deposit or withdrawal, in integer cents.
type AdjustmentRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}
