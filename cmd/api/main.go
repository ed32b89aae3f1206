package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/handlers"
	"github.com/tayashahzad4-eng/Idea-validater/internal/api/router"
	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
	"github.com/tayashahzad4-eng/Idea-validater/internal/integrations"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/validator"
	"github.com/tayashahzad4-eng/Idea-validater/internal/repository/postgres"
	"github.com/tayashahzad4-eng/Idea-validater/internal/repository/sqlite"
	"github.com/tayashahzad4-eng/Idea-validater/internal/services"
	"github.com/tayashahzad4-eng/Idea-validater/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, accountRepo, validationRepo, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Infof("Database ready (driver=%s)", cfg.Database.Driver)

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		log.Fatalf("Failed to configure AI provider: %v", err)
	}

	accountService := services.NewAccountService(accountRepo, cfg.Auth.BCryptCost, log)
	validationService := services.NewValidationService(
		validationRepo,
		accountRepo,
		analyzer,
		services.NewQuotaPolicy(),
		cfg.AI.Provider,
		log,
	)
	billingService := services.NewBillingService(cfg.Billing, accountService, log)
	if !billingService.Configured() {
		log.Warn("Stripe not configured; billing endpoints will return 503")
	}

	val := validator.New()
	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(db),
		Auth:       handlers.NewAuthHandler(accountService, cfg, log, val),
		Validation: handlers.NewValidationHandler(validationService, log, val),
		Billing:    handlers.NewBillingHandler(billingService, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	usageReset := worker.NewUsageReset(accountRepo, log)
	if err := usageReset.Start(ctx); err != nil {
		log.Fatalf("Failed to start usage reset worker: %v", err)
	}
	defer usageReset.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
}

func openDatabase(cfg *config.Config) (*sql.DB, account.Repository, validation.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, sqlite.NewAccountRepository(db), sqlite.NewValidationRepository(db), nil
	case "postgres":
		db, err := postgres.Open(postgres.Config{
			DSN:             cfg.Database.PostgresDSN(),
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return db, postgres.NewAccountRepository(db), postgres.NewValidationRepository(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func newAnalyzer(cfg *config.Config) (validation.Analyzer, error) {
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
		return integrations.NewGeminiAnalyzer(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.RequestTimeout), nil
	case "openai":
		if cfg.AI.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
		return integrations.NewOpenAIAnalyzer(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}
}
