package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/berrybet/wagerd/internal/adapter/http/dto"
	"github.com/berrybet/wagerd/internal/adapter/http/middleware"
	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	Deposit(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error)
	Withdraw(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a wagering account for a user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Me returns the authenticated user's account and aggregates.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	stats, err := h.accountUC.GetStats(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{
		Account: dto.AccountFromDomain(account),
		Stats:   dto.StatsFromDomain(stats),
	})
}

// Deposit credits the authenticated user's account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.accountUC.Deposit)
}

// Withdraw debits the authenticated user's account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.accountUC.Withdraw)
}

func (h *AccountHandler) adjust(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID string, amount int64, description string) (*domain.Account, error),
) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := op(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to adjust balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
