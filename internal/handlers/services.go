package handlers

import (
	"context"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/service"
)

// RatingService is what the rating handlers need from the service layer
type RatingService interface {
	RateItem(ctx context.Context, user *models.User, in service.RateInput) (*models.EmployeeRating, error)
	Submit(ctx context.Context, user *models.User, ratingID uint) (*models.EmployeeRating, error)
	ListMine(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error)
	Options(ctx context.Context, userID, skillID uint, subskillID *uint) (*service.RatingOptions, error)
	History(ctx context.Context, viewer *models.User, ratingID uint) ([]models.SkillRatingHistory, error)
	SetNotApplicable(ctx context.Context, actor *models.User, userID, skillID uint, na bool) (*models.EmployeeRating, error)
}

// ApprovalService is what the approval handlers need from the service layer
type ApprovalService interface {
	Approve(ctx context.Context, ratingID, reviewerID uint, comment *string) (*models.EmployeeRating, error)
	Reject(ctx context.Context, ratingID, reviewerID uint, comment string) (*models.EmployeeRating, error)
	PendingApprovals(ctx context.Context, reviewer *models.User) ([]models.EmployeeRatingWithDetails, error)
}

// ProgressService computes category progress
type ProgressService interface {
	CategoryProgress(ctx context.Context, userID, categoryID uint) (*progression.Progress, error)
	AllProgress(ctx context.Context, userID uint) ([]progression.Progress, error)
}

// CatalogService lists the skill catalog
type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.SkillCategory, error)
	CategorySkills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error)
}

// NotificationService reads a user's notifications
type NotificationService interface {
	List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

// AuditLogReader lists audit log entries
type AuditLogReader interface {
	GetAll(ctx context.Context, userID *uint, limit, offset int) ([]models.AuditLog, error)
}

var (
	_ RatingService       = (*service.RatingService)(nil)
	_ ApprovalService     = (*service.ApprovalService)(nil)
	_ ProgressService     = (*service.ProgressService)(nil)
	_ CatalogService      = (*service.CatalogService)(nil)
	_ NotificationService = (*service.NotificationService)(nil)
)
