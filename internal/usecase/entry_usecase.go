package usecase

import (
	"context"

	"github.com/berrybet/wagerd/internal/domain"
)

// EntryUseCase handles ledger read queries.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// ListEntriesByUserInput represents input for listing ledger entries.
type ListEntriesByUserInput struct {
	UserID     string
	TypeFilter domain.EntryType
	Page       int
	PageSize   int
}

// ListEntriesByUser lists a user's ledger entries, most recent first, with
// an optional type filter.
func (uc *EntryUseCase) ListEntriesByUser(ctx context.Context, input ListEntriesByUserInput) ([]*domain.Entry, error) {
	if input.UserID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if input.TypeFilter != "" && !input.TypeFilter.IsValid() {
		return nil, domain.ErrInvalidEntryType
	}
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}
	if input.PageSize > 100 {
		input.PageSize = 100
	}

	offset := (input.Page - 1) * input.PageSize

	return uc.entryRepo.ListByUser(ctx, input.UserID, input.TypeFilter, input.PageSize, offset)
}

// ReconstructBalance sums a user's full ledger history. Used by operators to
// audit that a balance matches its entries.
func (uc *EntryUseCase) ReconstructBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	return uc.entryRepo.SumByUser(ctx, userID)
}
