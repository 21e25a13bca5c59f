package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/berrybet/wagerd/internal/adapter/http"
	"github.com/berrybet/wagerd/internal/adapter/http/handler"
	"github.com/berrybet/wagerd/internal/adapter/http/middleware"
	postgresRepo "github.com/berrybet/wagerd/internal/adapter/repository/postgres"
	redisRepo "github.com/berrybet/wagerd/internal/adapter/repository/redis"
	"github.com/berrybet/wagerd/internal/infrastructure/auth"
	"github.com/berrybet/wagerd/internal/infrastructure/config"
	"github.com/berrybet/wagerd/internal/infrastructure/logging"
	"github.com/berrybet/wagerd/internal/infrastructure/metrics"
	"github.com/berrybet/wagerd/internal/infrastructure/postgres"
	"github.com/berrybet/wagerd/internal/infrastructure/redis"
	"github.com/berrybet/wagerd/internal/outcome"
	"github.com/berrybet/wagerd/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Outcome generator: deterministic when OUTCOME_SEED is set, otherwise
	// seeded from crypto/rand at startup.
	seed := resolveSeed(cfg.OutcomeSeed)
	drawer, err := outcome.NewGenerator(outcome.DefaultTable(), mathrand.New(mathrand.NewSource(seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid outcome table")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	wagerRepo := postgresRepo.NewWagerRepository(pool)
	statsRepo := postgresRepo.NewStatsRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	retrier := postgresRepo.NewRetrier(appLogger.Logger)
	m := metrics.New()

	// Initialize use cases
	wagerUC := usecase.NewWagerUseCase(txManager, accountRepo, entryRepo, wagerRepo, statsRepo, drawer, idGen, retrier, m)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, statsRepo, idGen, m)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	rankingUC := usecase.NewRankingUseCase(statsRepo, cache, m)

	// Initialize handlers
	wagerHandler := handler.NewWagerHandler(wagerUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	rankingHandler := handler.NewRankingHandler(rankingUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WagerHandler:     wagerHandler,
		AccountHandler:   accountHandler,
		EntryHandler:     entryHandler,
		RankingHandler:   rankingHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// resolveSeed returns the configured seed, or a random one when unset.
func resolveSeed(configured int64) int64 {
	if configured != 0 {
		return configured
	}

	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively fatal elsewhere too; fall back
		// to something that still varies between runs.
		return int64(os.Getpid())
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
