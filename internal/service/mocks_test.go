package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
)

type mockRatingStore struct{ mock.Mock }

func (m *mockRatingStore) GetByID(ctx context.Context, id uint) (*models.EmployeeRating, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingStore) GetWithDetails(ctx context.Context, id uint) (*models.EmployeeRatingWithDetails, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.EmployeeRatingWithDetails)
	return r, args.Error(1)
}

func (m *mockRatingStore) GetByUserAndTarget(ctx context.Context, userID, skillID uint, subskillID *uint) (*models.EmployeeRating, error) {
	args := m.Called(ctx, userID, skillID, subskillID)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingStore) ListByUser(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error) {
	args := m.Called(ctx, userID, categoryID)
	r, _ := args.Get(0).([]models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingStore) ListSubmitted(ctx context.Context) ([]models.EmployeeRatingWithDetails, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.EmployeeRatingWithDetails)
	return r, args.Error(1)
}

func (m *mockRatingStore) Create(ctx context.Context, rating *models.EmployeeRating, notifications []models.Notification) error {
	return m.Called(ctx, rating, notifications).Error(0)
}

func (m *mockRatingStore) UpdateByOwner(ctx context.Context, rating *models.EmployeeRating, expected progression.Status, notifications []models.Notification) error {
	return m.Called(ctx, rating, expected, notifications).Error(0)
}

func (m *mockRatingStore) ApplyReview(ctx context.Context, update repository.ReviewUpdate, notification *models.Notification) (*models.EmployeeRating, error) {
	args := m.Called(ctx, update, notification)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingStore) SetNotApplicable(ctx context.Context, userID, skillID uint, na bool) (*models.EmployeeRating, error) {
	args := m.Called(ctx, userID, skillID, na)
	r, _ := args.Get(0).(*models.EmployeeRating)
	return r, args.Error(1)
}

func (m *mockRatingStore) ListHistory(ctx context.Context, ratingID uint) ([]models.SkillRatingHistory, error) {
	args := m.Called(ctx, ratingID)
	r, _ := args.Get(0).([]models.SkillRatingHistory)
	return r, args.Error(1)
}

type mockCatalogStore struct{ mock.Mock }

func (m *mockCatalogStore) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.SkillCategory)
	return r, args.Error(1)
}

func (m *mockCatalogStore) GetCategoryByID(ctx context.Context, id uint) (*models.SkillCategory, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.SkillCategory)
	return r, args.Error(1)
}

func (m *mockCatalogStore) ListSkills(ctx context.Context, categoryID uint) ([]models.Skill, error) {
	args := m.Called(ctx, categoryID)
	r, _ := args.Get(0).([]models.Skill)
	return r, args.Error(1)
}

func (m *mockCatalogStore) ListSubskills(ctx context.Context, categoryID uint) ([]models.Subskill, error) {
	args := m.Called(ctx, categoryID)
	r, _ := args.Get(0).([]models.Subskill)
	return r, args.Error(1)
}

func (m *mockCatalogStore) GetSkillByID(ctx context.Context, id uint) (*models.Skill, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Skill)
	return r, args.Error(1)
}

func (m *mockCatalogStore) GetSubskillByID(ctx context.Context, id uint) (*models.Subskill, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Subskill)
	return r, args.Error(1)
}

func (m *mockCatalogStore) CountSubskills(ctx context.Context, skillID uint) (int, error) {
	args := m.Called(ctx, skillID)
	return args.Int(0), args.Error(1)
}

func (m *mockCatalogStore) ListSkillsWithSubskills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error) {
	args := m.Called(ctx, categoryID)
	r, _ := args.Get(0).([]models.SkillWithSubskills)
	return r, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.User)
	return r, args.Error(1)
}

func (m *mockUserStore) ListByRoles(ctx context.Context, roles []progression.Role) ([]models.User, error) {
	args := m.Called(ctx, roles)
	r, _ := args.Get(0).([]models.User)
	return r, args.Error(1)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) CreateMany(ctx context.Context, notifications []models.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	r, _ := args.Get(0).([]models.Notification)
	return r, args.Error(1)
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// auditRecorder keeps audit entries in memory
type auditRecorder struct {
	entries []models.AuditLog
}

func (a *auditRecorder) Create(_ context.Context, log *models.AuditLog) error {
	a.entries = append(a.entries, *log)
	return nil
}

type mockProgressCache struct{ mock.Mock }

func (m *mockProgressCache) Generation(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockProgressCache) Get(ctx context.Context, userID, categoryID uint) (*progression.Progress, bool, error) {
	args := m.Called(ctx, userID, categoryID)
	p, _ := args.Get(0).(*progression.Progress)
	return p, args.Bool(1), args.Error(2)
}

func (m *mockProgressCache) Set(ctx context.Context, userID uint, generation string, p progression.Progress) (bool, error) {
	args := m.Called(ctx, userID, generation, p)
	return args.Bool(0), args.Error(1)
}

func (m *mockProgressCache) InvalidateUser(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}
