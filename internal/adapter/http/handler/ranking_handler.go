package handler

import (
	"context"
	"net/http"

	"github.com/berrybet/wagerd/internal/adapter/http/dto"
	"github.com/berrybet/wagerd/internal/domain"
)

// RankingService defines the behavior needed by RankingHandler.
type RankingService interface {
	TopN(ctx context.Context, n int) ([]*domain.RankRow, error)
}

// RankingHandler serves the leaderboard.
type RankingHandler struct {
	rankingUC RankingService
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingUC RankingService) *RankingHandler {
	return &RankingHandler{rankingUC: rankingUC}
}

// Top returns the top users by total profit.
func (h *RankingHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 10)

	rows, err := h.rankingUC.TopN(r.Context(), limit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load ranking", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RankingFromDomain(rows))
}
