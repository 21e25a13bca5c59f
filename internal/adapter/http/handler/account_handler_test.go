package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/berrybet/wagerd/internal/adapter/http/dto"
	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

type accountServiceStub struct {
	createFn   func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn      func(ctx context.Context, userID string) (*domain.Account, error)
	statsFn    func(ctx context.Context, userID string) (*domain.UserStats, error)
	depositFn  func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error)
	withdrawFn func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.getFn(ctx, userID)
}

func (s *accountServiceStub) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.statsFn(ctx, userID)
}

func (s *accountServiceStub) Deposit(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
	return s.depositFn(ctx, userID, amount, description)
}

func (s *accountServiceStub) Withdraw(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
	return s.withdrawFn(ctx, userID, amount, description)
}

func TestAccountHandler_Create(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return &domain.Account{ID: "acc-1", UserID: input.UserID, Balance: input.InitialBalance, Active: true}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{UserID: "user-1", InitialBalance: 5000})
	req := authenticatedRequest(http.MethodPost, "/api/v1/accounts", body)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != "user-1" || resp.Balance != 5000 {
		t.Fatalf("unexpected account %+v", resp)
	}
}

func TestAccountHandler_Me(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			return &domain.Account{ID: "acc-1", UserID: userID, Balance: 10700, Active: true}, nil
		},
		statsFn: func(ctx context.Context, userID string) (*domain.UserStats, error) {
			return &domain.UserStats{UserID: userID, TotalBets: 3, TotalWins: 1, TotalLosses: 2, TotalProfit: 700}, nil
		},
	})

	req := authenticatedRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()

	handler.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Account == nil || resp.Account.Balance != 10700 {
		t.Fatalf("unexpected account %+v", resp.Account)
	}
	if resp.Stats == nil || resp.Stats.TotalProfit != 700 {
		t.Fatalf("unexpected stats %+v", resp.Stats)
	}
}

func TestAccountHandler_Me_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := authenticatedRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()

	handler.Me(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Deposit(t *testing.T) {
	var gotAmount int64
	handler := NewAccountHandler(&accountServiceStub{
		depositFn: func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
			gotAmount = amount
			return &domain.Account{ID: "acc-1", UserID: userID, Balance: 15000, Active: true}, nil
		},
	})

	body, _ := json.Marshal(dto.AdjustmentRequest{Amount: 5000, Description: "pix"})
	req := authenticatedRequest(http.MethodPost, "/api/v1/deposits", body)
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAmount != 5000 {
		t.Fatalf("expected amount 5000, got %d", gotAmount)
	}
}

func TestAccountHandler_Withdraw_InsufficientFunds(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		withdrawFn: func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.AdjustmentRequest{Amount: 999999})
	req := authenticatedRequest(http.MethodPost, "/api/v1/withdrawals", body)
	rec := httptest.NewRecorder()

	handler.Withdraw(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAccountHandler_Deposit_Unauthenticated(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		depositFn: func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error) {
			t.Fatal("Deposit should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", nil)
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
