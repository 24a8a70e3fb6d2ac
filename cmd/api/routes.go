package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"skilltrack/internal/config"
	"skilltrack/internal/handlers"
	"skilltrack/internal/metrics"
	"skilltrack/internal/middleware"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
	"skilltrack/internal/service"
)

// services bundles the repositories and services the API is built from
type services struct {
	users         *repository.UserRepository
	auditLogs     *repository.AuditRepository
	ratings       *service.RatingService
	approvals     *service.ApprovalService
	progress      *service.ProgressService
	catalog       *service.CatalogService
	notifications *service.NotificationService
}

// newServices wires repositories into services. cache may be nil.
func newServices(db *sql.DB, cache service.ProgressCache, m *metrics.Metrics, cfg *config.RatingConfig, now func() time.Time) *services {
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	audit := service.NewAuditService(auditRepo)

	return &services{
		users:         userRepo,
		auditLogs:     auditRepo,
		ratings:       service.NewRatingService(ratingRepo, catalogRepo, userRepo, audit, cache, m, now),
		approvals:     service.NewApprovalService(ratingRepo, userRepo, audit, cache, m, cfg.UpgradeCoolDown, now),
		progress:      service.NewProgressService(catalogRepo, ratingRepo, cache, m),
		catalog:       service.NewCatalogService(catalogRepo),
		notifications: service.NewNotificationService(notificationRepo),
	}
}

// routerDeps is everything newRouter needs besides the services
type routerDeps struct {
	cfg     *config.Config
	db      handlers.Pinger
	tokens  middleware.TokenValidator
	limiter middleware.Limiter // nil disables rate limiting
	metrics *metrics.Metrics
}

// newRouter registers all routes and applies the global middleware
func newRouter(d routerDeps, svc *services) http.Handler {
	authMw := middleware.NewAuthMiddleware(d.tokens, svc.users)
	corsMw := middleware.NewCORSMiddleware(&d.cfg.CORS)
	auditMw := middleware.NewAuditMiddleware(svc.auditLogs)

	ratingHandler := handlers.NewRatingHandler(svc.ratings)
	approvalHandler := handlers.NewApprovalHandler(svc.approvals)
	progressHandler := handlers.NewProgressHandler(svc.progress)
	catalogHandler := handlers.NewCatalogHandler(svc.catalog)
	notificationHandler := handlers.NewNotificationHandler(svc.notifications)
	adminHandler := handlers.NewAdminHandler(svc.ratings)
	auditHandler := handlers.NewAuditHandler(svc.auditLogs)
	healthHandler := handlers.NewHealthHandler(d.db, d.cfg.App.Version)

	mux := http.NewServeMux()

	// authenticated wraps h for any signed-in user
	authenticated := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(h)
	}
	// reviewer wraps h for tech leads, managers and admins
	reviewer := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(middleware.RequireReviewer(h))
	}

	// Catalog
	mux.Handle("GET /api/v1/categories", authenticated(catalogHandler.ListCategories))
	mux.Handle("GET /api/v1/categories/{categoryId}/skills", authenticated(catalogHandler.CategorySkills))

	// Own ratings
	mux.Handle("GET /api/v1/ratings", authenticated(ratingHandler.ListMyRatings))
	mux.Handle("PUT /api/v1/ratings", authenticated(ratingHandler.Rate))
	mux.Handle("GET /api/v1/ratings/options", authenticated(ratingHandler.Options))
	mux.Handle("POST /api/v1/ratings/{id}/submit", authenticated(ratingHandler.Submit))
	mux.Handle("GET /api/v1/ratings/{id}/history", authenticated(ratingHandler.History))

	// Progress
	mux.Handle("GET /api/v1/progress", authenticated(progressHandler.AllProgress))
	mux.Handle("GET /api/v1/progress/{categoryId}", authenticated(progressHandler.CategoryProgress))

	// Approvals
	mux.Handle("GET /api/v1/approvals/pending", reviewer(approvalHandler.ListPending))
	mux.Handle("POST /api/v1/approvals/{id}/approve", reviewer(approvalHandler.Approve))
	mux.Handle("POST /api/v1/approvals/{id}/reject", reviewer(approvalHandler.Reject))

	// Notifications
	mux.Handle("GET /api/v1/notifications", authenticated(notificationHandler.List))
	mux.Handle("POST /api/v1/notifications/{id}/read", authenticated(notificationHandler.MarkRead))

	// Admin routes
	mux.Handle("PUT /api/v1/admin/users/{userId}/skills/{skillId}/na",
		authMw.Authenticate(
			middleware.RequireAnyRole(progression.RoleAdmin, progression.RoleManager)(
				http.HandlerFunc(adminHandler.SetNotApplicable),
			),
		),
	)
	mux.Handle("GET /api/v1/admin/audit-logs",
		authMw.Authenticate(
			middleware.RequireAnyRole(progression.RoleAdmin)(
				auditMw.Log("audit_logs.view", "audit_logs")(
					http.HandlerFunc(auditHandler.ListAuditLogs),
				),
			),
		),
	)

	// Operations
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// metrics sits directly on the mux so the matched pattern is visible
	var inner http.Handler = middleware.MetricsMiddleware(d.metrics)(mux)
	if d.limiter != nil {
		inner = middleware.RateLimit(d.limiter)(inner)
	}

	return chain(inner,
		middleware.SecurityHeaders,
		corsMw.Handler,
		middleware.LoggingMiddleware,
	)
}
