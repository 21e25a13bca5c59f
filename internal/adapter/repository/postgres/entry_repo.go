package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. The entries table is
// append-only: there is deliberately no UPDATE or DELETE here.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, user_id, wager_id, type, amount, balance_before, balance_after, account_version, description, created_at`

// Append writes one entry inside the enclosing transaction. A storage fault
// here aborts the whole unit of work.
func (r *EntryRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO entries (id, user_id, wager_id, type, amount, balance_before, balance_after, account_version, description, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UserID, entry.WagerID, string(entry.Type), entry.Amount,
		entry.BalanceBefore, entry.BalanceAfter, entry.AccountVersion,
		entry.Description, entry.CreatedAt,
	)

	return err
}

// ListByUser lists a user's entries, most recent first, optionally filtered
// by type. The (user_id, created_at) index backs this query.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, typeFilter domain.EntryType, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	args := []any{userID, limit, offset}

	if typeFilter != "" {
		query = `
		SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = $1 AND type = $4
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
		args = append(args, string(typeFilter))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		var wagerID *string
		err := rows.Scan(&e.ID, &e.UserID, &wagerID, &e.Type, &e.Amount,
			&e.BalanceBefore, &e.BalanceAfter, &e.AccountVersion, &e.Description, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		if wagerID != nil {
			e.WagerID = *wagerID
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// SumByUser reconstructs a user's balance from the full ledger history.
func (r *EntryRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM entries WHERE user_id = $1`, userID).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}
