package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// WagerRepository implements usecase.WagerRepository. Only settled wagers
// reach persistence; the row is immutable once inserted.
type WagerRepository struct {
	pool *pgxpool.Pool
}

// NewWagerRepository creates a new WagerRepository.
func NewWagerRepository(pool *pgxpool.Pool) *WagerRepository {
	return &WagerRepository{pool: pool}
}

const wagerColumns = `id, user_id, stake, outcome, payout, result_balance, state, created_at`

// Create persists a settled wager inside the enclosing transaction.
func (r *WagerRepository) Create(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO wagers (id, user_id, stake, outcome, payout, result_balance, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		wager.ID, wager.UserID, wager.Stake, wager.Outcome,
		wager.Payout, wager.ResultBalance, string(wager.State), wager.CreatedAt,
	)

	return err
}

// GetByID retrieves a wager by ID.
func (r *WagerRepository) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+wagerColumns+` FROM wagers WHERE id = $1`, id)

	var w domain.Wager
	err := row.Scan(&w.ID, &w.UserID, &w.Stake, &w.Outcome, &w.Payout,
		&w.ResultBalance, &w.State, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWagerNotFound
		}
		return nil, err
	}

	return &w, nil
}

// ListByUser lists a user's wagers, most recent first.
func (r *WagerRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Wager, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+wagerColumns+` FROM wagers
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wagers []*domain.Wager
	for rows.Next() {
		var w domain.Wager
		err := rows.Scan(&w.ID, &w.UserID, &w.Stake, &w.Outcome, &w.Payout,
			&w.ResultBalance, &w.State, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		wagers = append(wagers, &w)
	}

	return wagers, rows.Err()
}
