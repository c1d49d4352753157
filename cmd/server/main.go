package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/wagerpool/ledger/internal/adapter/http"
	"github.com/wagerpool/ledger/internal/adapter/http/handler"
	postgresRepo "github.com/wagerpool/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/wagerpool/ledger/internal/adapter/repository/redis"
	"github.com/wagerpool/ledger/internal/infrastructure/auth"
	"github.com/wagerpool/ledger/internal/infrastructure/config"
	"github.com/wagerpool/ledger/internal/infrastructure/logger"
	"github.com/wagerpool/ledger/internal/infrastructure/metrics"
	"github.com/wagerpool/ledger/internal/infrastructure/postgres"
	"github.com/wagerpool/ledger/internal/infrastructure/redis"
	"github.com/wagerpool/ledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewHexIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(walletRepo)
	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, txnRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txnRepo)

	// Initialize handlers
	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	walletHandler := handler.NewWalletHandler(walletUC, m)
	transferHandler := handler.NewTransferHandler(transferUC, txnUC, walletUC, retrier, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    walletHandler,
		TransferHandler:  transferHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
