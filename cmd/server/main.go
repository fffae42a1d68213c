package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/config"
	"github.com/SAP-F-2025/assessment-engine/internal/generation"
	"github.com/SAP-F-2025/assessment-engine/internal/handlers"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories/memory"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories/postgres"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
	"github.com/SAP-F-2025/assessment-engine/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	var quizCache cache.CacheService
	if cfg.CacheEnabled {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			// the engine works without a cache
			logger.Warn("Redis unavailable, quiz cache disabled", "error", err)
		} else {
			defer client.Close()
			quizCache = cache.NewRedisCache(client, logger)
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	generator := generation.NewOpenRouterClient(generation.OpenRouterConfig{
		BaseURL: cfg.Generation.BaseURL,
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Referer: cfg.Generation.Referer,
		Title:   cfg.Generation.Title,
		Timeout: cfg.Generation.Timeout,
	}, logger)

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:             repo,
		Guard:            auth.NewGuard(auth.NewRolePolicy(auth.DefaultRoleRules)),
		Generator:        generator,
		GenerationModel:  cfg.Generation.Model,
		Cache:            quizCache,
		QuizCacheTTL:     cfg.QuizCacheTTL,
		Publisher:        publisher,
		Logger:           logger,
		Validator:        validator.New(),
		StrictAnswerKeys: cfg.StrictAnswerKeys,
	})

	var resolver handlers.PrincipalResolver = handlers.HeaderResolver{}
	if cfg.Auth.Mode == config.AuthModeCasdoor {
		resolver = handlers.NewCasdoorResolver(
			cfg.Auth.CasdoorEndpoint,
			cfg.Auth.CasdoorClientID,
			cfg.Auth.CasdoorSecret,
			cfg.Auth.CasdoorCert,
			cfg.Auth.CasdoorOrg,
			cfg.Auth.CasdoorApp,
		)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery(), utils.ContextLogger(appLogger), utils.LoggerMiddleware(appLogger))
	handlers.NewHandlerManager(serviceManager, resolver, appLogger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Assessment engine listening", "port", cfg.Port, "storage", cfg.StorageDriver, "auth_mode", cfg.Auth.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepository(cfg *config.Config, logger *slog.Logger) (repositories.Repository, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepository(memory.Open()), nil
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return nil, err
	}
	return postgres.NewRepository(db), nil
}
