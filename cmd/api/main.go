package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "skilltrack/docs" // This is for Swagger
	"skilltrack/internal/auth"
	"skilltrack/internal/cache"
	"skilltrack/internal/config"
	"skilltrack/internal/database"
	"skilltrack/internal/logger"
	"skilltrack/internal/metrics"
	"skilltrack/internal/middleware"
	"skilltrack/internal/scheduler"
	"skilltrack/internal/service"
	"skilltrack/internal/vault"
	"skilltrack/migrations"
)

// @title SkillTrack API
// @version 1.0
// @description Skill self-ratings, reviewer approvals and category progress
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@skilltrack.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	if cfg.Vault.Enabled {
		if err := loadVaultSecrets(cfg); err != nil {
			slog.Error("Failed to load secrets from Vault", "error", err)
			os.Exit(1)
		}
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// root context for background work, cancelled on shutdown
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Initialize database
	db, err := database.New(appCtx, &cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		err := db.Close()
		if err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrateCtx, cancel := getContext(2 * time.Minute)
	applied, err := db.Migrate(migrateCtx, migrations.FS)
	cancel()
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed", "applied", len(applied))

	tokens, err := auth.NewService(&cfg.JWT)
	if err != nil {
		slog.Error("Failed to initialize token validation", "error", err)
		os.Exit(1)
	}
	slog.Info("Token validation configured", "algorithm", tokens.Algorithm(), "issuer", cfg.JWT.Issuer)

	m := metrics.New()

	// Redis backs the progress cache and, optionally, the shared rate limiter.
	// progressCache stays an untyped nil when Redis is off.
	var progressCache service.ProgressCache
	var limiter middleware.Limiter
	if cfg.Redis.Enabled() {
		redisClient := cache.NewClient(cfg.Redis)
		defer redisClient.Close()

		pingCtx, cancel := getContext(5 * time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			slog.Error("Failed to connect to Redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}

		progressCache = cache.NewProgressCache(redisClient, cfg.Redis.ProgressTTL)
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			limiter = middleware.NewRedisLimiter(redisClient, &cfg.RateLimit)
		}
		slog.Info("Redis connected", "addr", cfg.Redis.Addr, "progress_ttl", cfg.Redis.ProgressTTL)
	} else {
		slog.Warn("Redis is disabled - progress is computed on every request")
	}
	if cfg.RateLimit.Enabled && limiter == nil {
		limiter = middleware.NewMemoryLimiter(appCtx, &cfg.RateLimit)
	}

	svc := newServices(db.DB, progressCache, m, &cfg.Rating, time.Now)

	// Initialize scheduler
	schedulerService := scheduler.NewScheduler(svc.approvals, svc.notifications, &cfg.Scheduler)
	schedulerService.Start()
	defer schedulerService.Stop()

	handler := newRouter(routerDeps{
		cfg:     cfg,
		db:      db.DB,
		tokens:  tokens,
		limiter: limiter,
		metrics: m,
	}, svc)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := getContext(30 * time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}

// loadVaultSecrets replaces secret settings with the values stored in Vault
func loadVaultSecrets(cfg *config.Config) error {
	client, err := vault.NewClient(&vault.Config{
		Address: cfg.Vault.Address,
		Token:   cfg.Vault.Token,
		KVMount: cfg.Vault.KVMount,
	})
	if err != nil {
		return err
	}

	ctx, cancel := getContext(10 * time.Second)
	defer cancel()

	secrets, err := client.LoadSecrets(ctx, cfg.Vault.SecretPath)
	if err != nil {
		return err
	}
	cfg.ApplySecrets(secrets)

	slog.Info("Secrets loaded from Vault", "addr", cfg.Vault.Address, "path", cfg.Vault.SecretPath, "keys", len(secrets))
	return nil
}
