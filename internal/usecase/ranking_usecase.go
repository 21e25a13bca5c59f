package usecase

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/berrybet/wagerd/internal/domain"
	"github.com/berrybet/wagerd/internal/infrastructure/metrics"
)

const rankingCacheKey = "ranking:top"

// RankingUseCase produces the leaderboard: a read-only projection over the
// account store and the stats aggregates. It never mutates ledger state and
// never blocks wagering.
type RankingUseCase struct {
	statsRepo StatsRepository
	cache     Cache
	metrics   *metrics.Metrics
}

// NewRankingUseCase creates a new RankingUseCase. Cache and metrics are
// optional.
func NewRankingUseCase(statsRepo StatsRepository, cache Cache, metrics *metrics.Metrics) *RankingUseCase {
	return &RankingUseCase{
		statsRepo: statsRepo,
		cache:     cache,
		metrics:   metrics,
	}
}

// TopN returns the top n users ordered by total profit descending, balance
// descending, then userID ascending. Results come from a short-TTL cache
// when available; staleness is bounded by RankingCacheTTL.
func (uc *RankingUseCase) TopN(ctx context.Context, n int) ([]*domain.RankRow, error) {
	if n <= 0 {
		n = 10
	}
	if n > 100 {
		n = 100
	}

	if uc.metrics != nil {
		uc.metrics.RankingQueries.Inc()
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey(n)); err == nil && cached != nil {
			var rows []*domain.RankRow
			if err := json.Unmarshal(cached, &rows); err == nil {
				if uc.metrics != nil {
					uc.metrics.RankingCacheHit.Inc()
				}
				return rows, nil
			}
		}
	}

	rows, err := uc.statsRepo.TopByProfit(ctx, n)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(rows); err == nil {
			_ = uc.cache.Set(ctx, cacheKey(n), encoded, RankingCacheTTL)
		}
	}

	return rows, nil
}

func cacheKey(n int) string {
	return rankingCacheKey + ":" + strconv.Itoa(n)
}
