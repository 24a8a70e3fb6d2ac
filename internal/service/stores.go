package service

import (
	"context"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
)

// The interfaces below are the parts of the repositories the services use.
// *repository.X values satisfy them; tests supply mocks.

type ratingStore interface {
	GetByID(ctx context.Context, id uint) (*models.EmployeeRating, error)
	GetWithDetails(ctx context.Context, id uint) (*models.EmployeeRatingWithDetails, error)
	GetByUserAndTarget(ctx context.Context, userID, skillID uint, subskillID *uint) (*models.EmployeeRating, error)
	ListByUser(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error)
	ListSubmitted(ctx context.Context) ([]models.EmployeeRatingWithDetails, error)
	Create(ctx context.Context, rating *models.EmployeeRating, notifications []models.Notification) error
	UpdateByOwner(ctx context.Context, rating *models.EmployeeRating, expected progression.Status, notifications []models.Notification) error
	ApplyReview(ctx context.Context, update repository.ReviewUpdate, notification *models.Notification) (*models.EmployeeRating, error)
	SetNotApplicable(ctx context.Context, userID, skillID uint, na bool) (*models.EmployeeRating, error)
	ListHistory(ctx context.Context, ratingID uint) ([]models.SkillRatingHistory, error)
}

type catalogStore interface {
	ListCategories(ctx context.Context) ([]models.SkillCategory, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.SkillCategory, error)
	ListSkills(ctx context.Context, categoryID uint) ([]models.Skill, error)
	ListSubskills(ctx context.Context, categoryID uint) ([]models.Subskill, error)
	GetSkillByID(ctx context.Context, id uint) (*models.Skill, error)
	GetSubskillByID(ctx context.Context, id uint) (*models.Subskill, error)
	CountSubskills(ctx context.Context, skillID uint) (int, error)
	ListSkillsWithSubskills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error)
}

type userStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	ListByRoles(ctx context.Context, roles []progression.Role) ([]models.User, error)
}

type notificationStore interface {
	CreateMany(ctx context.Context, notifications []models.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
}

type auditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// ProgressCache stores computed progress. A nil cache disables caching.
type ProgressCache interface {
	Generation(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, userID, categoryID uint) (*progression.Progress, bool, error)
	Set(ctx context.Context, userID uint, generation string, p progression.Progress) (bool, error)
	InvalidateUser(ctx context.Context, userID uint) error
}

var (
	_ ratingStore       = (*repository.RatingRepository)(nil)
	_ catalogStore      = (*repository.CatalogRepository)(nil)
	_ userStore         = (*repository.UserRepository)(nil)
	_ notificationStore = (*repository.NotificationRepository)(nil)
	_ auditStore        = (*repository.AuditRepository)(nil)
)
