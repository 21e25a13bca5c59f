package usecase

import "time"

const (
	// DefaultStorageTimeout bounds every unit of work against the store;
	// exceeding it surfaces as domain.ErrStorageTimeout.
	DefaultStorageTimeout = 10 * time.Second

	// MaxStake is the largest single stake accepted, in cents.
	MaxStake = int64(100_000_000) // R$ 1,000,000.00

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// RankingCacheTTL bounds staleness of the cached leaderboard.
	RankingCacheTTL = 10 * time.Second
)
