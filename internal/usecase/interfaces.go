package usecase

import (
	"context"
	"time"

	"github.com/berrybet/wagerd/internal/domain"
)

// AccountRepository defines data access for accounts. Balance mutations go
// through UpdateBalance inside a transaction holding the row lock; no other
// component writes balances.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// GetByUserIDForUpdate locks the account row for the duration of tx,
	// serializing wagers per user.
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, userID string, balance, version int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for the append-only ledger.
type EntryRepository interface {
	Append(ctx context.Context, tx Transaction, entry *domain.Entry) error
	ListByUser(ctx context.Context, userID string, typeFilter domain.EntryType, limit, offset int) ([]*domain.Entry, error)
	SumByUser(ctx context.Context, userID string) (int64, error)
}

// WagerRepository defines data access for settled wagers.
type WagerRepository interface {
	Create(ctx context.Context, tx Transaction, wager *domain.Wager) error
	GetByID(ctx context.Context, id string) (*domain.Wager, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Wager, error)
}

// StatsRepository maintains the per-user running aggregates that the ranking
// projector reads.
type StatsRepository interface {
	Apply(ctx context.Context, tx Transaction, delta domain.UserStats) error
	GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error)
	TopByProfit(ctx context.Context, limit int) ([]*domain.RankRow, error)
}

// OutcomeDrawer draws one weighted outcome class. Pure with respect to
// ledger state.
type OutcomeDrawer interface {
	Draw() domain.OutcomeClass
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a whole operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for read projections.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
