package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/berrybet/wagerd/internal/adapter/http/handler"
	"github.com/berrybet/wagerd/internal/adapter/http/middleware"
	"github.com/berrybet/wagerd/internal/infrastructure/auth"
	"github.com/berrybet/wagerd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WagerHandler     *handler.WagerHandler
	AccountHandler   *handler.AccountHandler
	EntryHandler     *handler.EntryHandler
	RankingHandler   *handler.RankingHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	authn := middleware.Auth(cfg.JWTManager)

	// Leaderboard is public
	r.Get("/api/ranking", cfg.RankingHandler.Top)

	// Profile and history
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Get("/api/users/me", cfg.AccountHandler.Me)
		r.Get("/api/transactions/me", cfg.EntryHandler.ListMine)
	})

	// Wagering and account mutations
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authn)

		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotency.Wrap)
		}

		r.Post("/roleta/apostar", cfg.WagerHandler.PlaceBet)

		r.Route("/wagers", func(r chi.Router) {
			r.Get("/", cfg.WagerHandler.ListMine)
			r.Get("/{id}", cfg.WagerHandler.Get)
		})

		r.Post("/accounts", cfg.AccountHandler.Create)
		r.Post("/deposits", cfg.AccountHandler.Deposit)
		r.Post("/withdrawals", cfg.AccountHandler.Withdraw)
	})

	return r
}
