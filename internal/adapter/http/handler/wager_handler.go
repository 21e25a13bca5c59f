package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/berrybet/wagerd/internal/adapter/http/dto"
	"github.com/berrybet/wagerd/internal/adapter/http/middleware"
	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// WagerService defines the behavior needed by WagerHandler.
type WagerService interface {
	PlaceWager(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error)
	GetWager(ctx context.Context, id string) (*domain.Wager, error)
	ListWagersByUser(ctx context.Context, input usecase.ListWagersByUserInput) ([]*domain.Wager, error)
}

// WagerHandler handles bet placement and wager history requests.
type WagerHandler struct {
	wagerUC WagerService
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(wagerUC WagerService) *WagerHandler {
	return &WagerHandler{wagerUC: wagerUC}
}

// PlaceBet resolves one roulette bet for the authenticated user.
func (h *WagerHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.wagerUC.PlaceWager(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to place bet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BetFromResult(result))
}

// Get retrieves a single wager by ID.
func (h *WagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	wager, err := h.wagerUC.GetWager(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wager", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// ListMine lists the authenticated user's wagers, most recent first.
func (h *WagerHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	wagers, err := h.wagerUC.ListWagersByUser(r.Context(), usecase.ListWagersByUserInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list wagers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagersFromDomain(wagers))
}
