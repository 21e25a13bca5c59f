package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository. Balances are
// stored as BIGINT cents; the row lock taken by GetByUserIDForUpdate is what
// serializes wagers per user.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, balance, version, active, created_at, updated_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, user_id, balance, version, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID, account.UserID, account.Balance, account.Version,
		account.Active, account.CreatedAt, account.UpdatedAt,
	)

	return err
}

// GetByUserID retrieves an account by user ID.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE user_id = $1`, userID)

	return scanAccount(row)
}

// GetByUserIDForUpdate retrieves an account with a FOR UPDATE lock held for
// the duration of tx.
func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 FOR UPDATE`, userID)

	return scanAccount(row)
}

// UpdateBalance updates the balance and version of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, userID string, balance, version int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE accounts SET balance = $1, version = $2, updated_at = $3
		WHERE user_id = $4`,
		balance, version, updatedAt, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		ORDER BY user_id ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Balance, &a.Version, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return &a, nil
}
