package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/service"
)

type mockRatingService struct{ mock.Mock }

func (m *mockRatingService) RateItem(ctx context.Context, user *models.User, in service.RateInput) (*models.EmployeeRating, error) {
	args := m.Called(ctx, user, in)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingService) Submit(ctx context.Context, user *models.User, ratingID uint) (*models.EmployeeRating, error) {
	args := m.Called(ctx, user, ratingID)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingService) ListMine(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error) {
	args := m.Called(ctx, userID, categoryID)
	r, _ := args.Get(0).([]models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingService) Options(ctx context.Context, userID, skillID uint, subskillID *uint) (*service.RatingOptions, error) {
	args := m.Called(ctx, userID, skillID, subskillID)
	r, _ := args.Get(0).(*service.RatingOptions)
	return r, args.Error(1)
}

func (m *mockRatingService) History(ctx context.Context, viewer *models.User, ratingID uint) ([]models.SkillRatingHistory, error) {
	args := m.Called(ctx, viewer, ratingID)
	r, _ := args.Get(0).([]models.SkillRatingHistory)
	return r, args.Error(1)
}

func (m *mockRatingService) SetNotApplicable(ctx context.Context, actor *models.User, userID, skillID uint, na bool) (*models.EmployeeRating, error) {
	args := m.Called(ctx, actor, userID, skillID, na)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

type mockApprovalService struct{ mock.Mock }

func (m *mockApprovalService) Approve(ctx context.Context, ratingID, reviewerID uint, comment *string) (*models.EmployeeRating, error) {
	args := m.Called(ctx, ratingID, reviewerID, comment)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockApprovalService) Reject(ctx context.Context, ratingID, reviewerID uint, comment string) (*models.EmployeeRating, error) {
	args := m.Called(ctx, ratingID, reviewerID, comment)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockApprovalService) PendingApprovals(ctx context.Context, reviewer *models.User) ([]models.EmployeeRatingWithDetails, error) {
	args := m.Called(ctx, reviewer)
	r, _ := args.Get(0).([]models.EmployeeRatingWithDetails)
	return r, args.Error(1)
}

type mockProgressService struct{ mock.Mock }

func (m *mockProgressService) CategoryProgress(ctx context.Context, userID, categoryID uint) (*progression.Progress, error) {
	args := m.Called(ctx, userID, categoryID)
	r, _ := args.Get(0).(*progression.Progress)
	return r, args.Error(1)
}

func (m *mockProgressService) AllProgress(ctx context.Context, userID uint) ([]progression.Progress, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]progression.Progress)
	return r, args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.SkillCategory)
	return r, args.Error(1)
}

func (m *mockCatalogService) CategorySkills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error) {
	args := m.Called(ctx, categoryID)
	r, _ := args.Get(0).([]models.SkillWithSubskills)
	return r, args.Error(1)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	r, _ := args.Get(0).([]models.Notification)
	return r, args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockAuditReader struct{ mock.Mock }

func (m *mockAuditReader) GetAll(ctx context.Context, userID *uint, limit, offset int) ([]models.AuditLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	r, _ := args.Get(0).([]models.AuditLog)
	return r, args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }
