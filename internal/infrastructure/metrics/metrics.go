package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Wager metrics
	WagersPlaced   prometheus.Counter
	WagersRejected *prometheus.CounterVec
	WagerDuration  prometheus.Histogram
	WagerStake     prometheus.Histogram
	WagerOutcomes  *prometheus.CounterVec
	WagerPayout    prometheus.Histogram

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Ledger metrics
	EntriesAppended *prometheus.CounterVec

	// Ranking metrics
	RankingQueries  prometheus.Counter
	RankingCacheHit prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		WagersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerd_wagers_placed_total",
			Help: "Total number of wagers settled",
		}),
		WagersRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerd_wagers_rejected_total",
				Help: "Total number of wagers rejected by reason",
			},
			[]string{"reason"},
		),
		WagerDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerd_wager_duration_seconds",
			Help:    "Duration of the wager settlement transaction",
			Buckets: prometheus.DefBuckets,
		}),
		WagerStake: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerd_wager_stake_cents",
			Help:    "Stake amounts in cents",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 100000, 1000000},
		}),
		WagerOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerd_wager_outcomes_total",
				Help: "Total settled wagers by outcome class",
			},
			[]string{"outcome"},
		),
		WagerPayout: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wagerd_wager_payout_cents",
			Help:    "Payout amounts in cents",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 100000, 1000000},
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerd_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerd_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		EntriesAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wagerd_ledger_entries_total",
				Help: "Total ledger entries appended by type",
			},
			[]string{"type"},
		),

		RankingQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerd_ranking_queries_total",
			Help: "Total leaderboard queries",
		}),
		RankingCacheHit: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wagerd_ranking_cache_hits_total",
			Help: "Total leaderboard queries served from cache",
		}),
	}
}
