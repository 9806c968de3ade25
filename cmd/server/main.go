package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/ledgerbook/internal/adapter/http"
	"github.com/iho/ledgerbook/internal/adapter/http/handler"
	"github.com/iho/ledgerbook/internal/adapter/repository/memory"
	redisRepo "github.com/iho/ledgerbook/internal/adapter/repository/redis"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/infrastructure/config"
	"github.com/iho/ledgerbook/internal/infrastructure/logger"
	"github.com/iho/ledgerbook/internal/infrastructure/metrics"
	"github.com/iho/ledgerbook/internal/infrastructure/redis"
	"github.com/iho/ledgerbook/internal/usecase"
)

// newBooks builds the journal and the ledger it projects into.
func newBooks(journalName, ledgerName string) (*domain.Journal, *domain.Ledger, error) {
	journal, err := domain.NewJournal(domain.NewSequence("JNL", 3), journalName)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := domain.NewLedger(domain.NewSequence("LDG", 3), domain.NewSequence("LEN", 6), ledgerName)
	if err != nil {
		return nil, nil, err
	}

	return journal, ledger, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Build the books
	journal, ledger, err := newBooks(cfg.JournalName, cfg.LedgerName)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to create books")
	}

	// Connect to Redis when configured
	var (
		idempotencyStore usecase.IdempotencyStore
		reportCache      usecase.Cache
	)
	healthHandler := handler.NewHealthHandler(nil)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		appLogger.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		reportCache = redisRepo.NewReportCache(redisClient)
		healthHandler = handler.NewHealthHandler(redisClient)
	}

	// Initialize repositories and use cases
	accountRepo := memory.NewAccountRepository()
	appMetrics := metrics.New()

	bookUC := usecase.NewBookUseCase(journal, ledger, domain.NewSequence("JEN", 6), memory.NewULIDGenerator(), appLogger, appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo, domain.NewSequence("ACC", 3), appMetrics)
	reportUC := usecase.NewReportUseCase(bookUC.Ledger(), accountRepo, appMetrics)
	if reportCache != nil {
		reportUC = reportUC.WithCache(reportCache, cfg.ReportCacheTTL)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		JournalHandler:   handler.NewJournalHandler(bookUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    healthHandler,
		Logger:           appLogger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
