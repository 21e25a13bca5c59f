package handler

import (
	"net/http"

	"github.com/berrybet/wagerd/internal/adapter/http/dto"
	"github.com/berrybet/wagerd/internal/adapter/http/middleware"
	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// EntryHandler handles ledger history requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// ListMine lists the authenticated user's ledger entries, most recent first.
// An optional type filter restricts results to one entry kind.
func (h *EntryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.entryUC.ListEntriesByUser(r.Context(), usecase.ListEntriesByUserInput{
		UserID:     userID,
		TypeFilter: domain.EntryType(r.URL.Query().Get("type")),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "limit", 20),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
