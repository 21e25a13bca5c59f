package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// StatsRepository implements usecase.StatsRepository as an upsert of running
// aggregates, applied in the same transaction as the wager so the leaderboard
// never rescans the ledger.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Apply adds the delta onto the user's aggregates.
func (r *StatsRepository) Apply(ctx context.Context, tx usecase.Transaction, delta domain.UserStats) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO user_stats (user_id, total_bets, total_wins, total_losses, total_wagered, total_profit, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			total_bets    = user_stats.total_bets + EXCLUDED.total_bets,
			total_wins    = user_stats.total_wins + EXCLUDED.total_wins,
			total_losses  = user_stats.total_losses + EXCLUDED.total_losses,
			total_wagered = user_stats.total_wagered + EXCLUDED.total_wagered,
			total_profit  = user_stats.total_profit + EXCLUDED.total_profit,
			updated_at    = EXCLUDED.updated_at`,
		delta.UserID, delta.TotalBets, delta.TotalWins, delta.TotalLosses,
		delta.TotalWagered, delta.TotalProfit, delta.UpdatedAt,
	)

	return err
}

// GetByUserID retrieves a user's aggregates; absent rows read as zeros.
func (r *StatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	s := domain.UserStats{UserID: userID}
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(total_bets, 0), COALESCE(total_wins, 0), COALESCE(total_losses, 0),
		       COALESCE(total_wagered, 0), COALESCE(total_profit, 0)
		FROM user_stats WHERE user_id = $1`, userID).
		Scan(&s.TotalBets, &s.TotalWins, &s.TotalLosses, &s.TotalWagered, &s.TotalProfit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &s, nil
		}
		return nil, err
	}

	return &s, nil
}

// TopByProfit returns the leaderboard rows: total profit descending, balance
// descending, user_id ascending for deterministic ties.
func (r *StatsRepository) TopByProfit(ctx context.Context, limit int) ([]*domain.RankRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.user_id, a.balance, COALESCE(s.total_profit, 0)
		FROM accounts a
		LEFT JOIN user_stats s ON s.user_id = a.user_id
		WHERE a.active
		ORDER BY COALESCE(s.total_profit, 0) DESC, a.balance DESC, a.user_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranking []*domain.RankRow
	for rows.Next() {
		var row domain.RankRow
		if err := rows.Scan(&row.UserID, &row.Balance, &row.TotalProfit); err != nil {
			return nil, err
		}
		ranking = append(ranking, &row)
	}

	return ranking, rows.Err()
}
