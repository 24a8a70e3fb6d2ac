package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skilltrack/internal/metrics"
	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func levelPtr(l progression.Level) *progression.Level { return &l }

type ratingFixture struct {
	ratings *mockRatingStore
	catalog *mockCatalogStore
	users   *mockUserStore
	cache   *mockProgressCache
	audit   *auditRecorder
	svc     *RatingService
}

func newRatingFixture(t *testing.T) *ratingFixture {
	t.Helper()
	f := &ratingFixture{
		ratings: &mockRatingStore{},
		catalog: &mockCatalogStore{},
		users:   &mockUserStore{},
		cache:   &mockProgressCache{},
		audit:   &auditRecorder{},
	}
	f.svc = NewRatingService(f.ratings, f.catalog, f.users, NewAuditService(f.audit), f.cache,
		metrics.New(), func() time.Time { return fixedNow })
	t.Cleanup(func() {
		f.ratings.AssertExpectations(t)
		f.catalog.AssertExpectations(t)
		f.users.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	return f
}

// subskill 10 "Concurrency" of skill 1 "Go"
func (f *ratingFixture) expectSubskillItem() {
	f.catalog.On("GetSkillByID", mock.Anything, uint(1)).Return(&models.Skill{ID: 1, CategoryID: 5, Name: "Go"}, nil)
	f.catalog.On("GetSubskillByID", mock.Anything, uint(10)).Return(&models.Subskill{ID: 10, SkillID: 1, Name: "Concurrency"}, nil)
}

func (f *ratingFixture) expectSkillRecord(userID uint, rec *models.EmployeeRating) {
	f.ratings.On("GetByUserAndTarget", mock.Anything, userID, uint(1), (*uint)(nil)).Return(rec, nil)
}

func (f *ratingFixture) expectExisting(userID uint, rec *models.EmployeeRating) {
	f.ratings.On("GetByUserAndTarget", mock.Anything, userID, uint(1), uintPtr(10)).Return(rec, nil)
}

var employee = &models.User{ID: 7, Email: "dev@example.com", FullName: "Dana Dev", Role: progression.RoleEmployee}

func TestRateItem_NewDraft(t *testing.T) {
	f := newRatingFixture(t)
	f.expectSubskillItem()
	f.expectSkillRecord(7, nil)
	f.expectExisting(7, nil)
	f.ratings.On("Create", mock.Anything, mock.MatchedBy(func(r *models.EmployeeRating) bool {
		return r.UserID == 7 && r.Rating == progression.LevelMedium && r.Status == progression.StatusDraft && r.SubmittedAt == nil
	}), []models.Notification(nil)).
		Run(func(args mock.Arguments) { args.Get(1).(*models.EmployeeRating).ID = 99 }).
		Return(nil)
	f.cache.On("InvalidateUser", mock.Anything, uint(7)).Return(nil)

	rating, err := f.svc.RateItem(t.Context(), employee, RateInput{
		SkillID:    1,
		SubskillID: uintPtr(10),
		Rating:     progression.LevelMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(99), rating.ID)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, AuditRate, f.audit.entries[0].Action)
}

func TestRateItem_SubmitNotifiesOtherReviewers(t *testing.T) {
	f := newRatingFixture(t)
	lead := &models.User{ID: 3, Email: "lead@example.com", FullName: "Lee Lead", Role: progression.RoleTechLead}

	f.expectSubskillItem()
	f.expectSkillRecord(3, nil)
	f.expectExisting(3, nil)
	f.users.On("ListByRoles", mock.Anything, progression.ReviewerRoles).Return([]models.User{
		*lead,
		{ID: 4, Role: progression.RoleManager},
		{ID: 5, Role: progression.RoleAdmin},
	}, nil)

	var sent []models.Notification
	f.ratings.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]models.Notification) }).
		Return(nil)
	f.cache.On("InvalidateUser", mock.Anything, uint(3)).Return(nil)

	rating, err := f.svc.RateItem(t.Context(), lead, RateInput{
		SkillID:    1,
		SubskillID: uintPtr(10),
		Rating:     progression.LevelHigh,
		Status:     progression.StatusSubmitted,
	})
	require.NoError(t, err)
	require.NotNil(t, rating.SubmittedAt)
	assert.Equal(t, fixedNow, *rating.SubmittedAt)

	require.Len(t, sent, 2)
	assert.Equal(t, uint(4), sent[0].UserID)
	assert.Equal(t, uint(5), sent[1].UserID)
	assert.Equal(t, "New Skill Rating Approval Required", sent[0].Title)
	assert.Equal(t, "Lee Lead has submitted a skill rating for Go - Concurrency that requires your approval.", sent[0].Message)
	assert.Equal(t, models.NotificationInfo, sent[0].Type)
}

func TestRateItem_UpgradeDenied(t *testing.T) {
	tests := []struct {
		name     string
		existing models.EmployeeRating
		target   progression.Level
		reason   string
		daysLeft int
	}{
		{
			name:     "approved high is locked",
			existing: models.EmployeeRating{ID: 1, Rating: progression.LevelHigh, Status: progression.StatusApproved},
			target:   progression.LevelHigh,
			reason:   progression.ReasonHighLocked,
		},
		{
			name:     "no downgrade of approved rating",
			existing: models.EmployeeRating{ID: 1, Rating: progression.LevelMedium, Status: progression.StatusApproved},
			target:   progression.LevelLow,
			reason:   progression.ReasonUpgradeOnly,
		},
		{
			name: "cool-down running",
			existing: models.EmployeeRating{
				ID: 1, Rating: progression.LevelLow, Status: progression.StatusApproved,
				NextUpgradeDate: func() *time.Time { t := fixedNow.Add(10 * 24 * time.Hour); return &t }(),
			},
			target:   progression.LevelMedium,
			reason:   "You can upgrade this subskill after 10 days",
			daysLeft: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRatingFixture(t)
			f.expectSubskillItem()
			f.expectSkillRecord(7, nil)
			existing := tt.existing
			f.expectExisting(7, &existing)

			_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, SubskillID: uintPtr(10), Rating: tt.target})
			require.ErrorIs(t, err, ErrUpgradeDenied)

			var denied *UpgradeDeniedError
			require.True(t, errors.As(err, &denied))
			assert.False(t, denied.Decision.Allowed)
			assert.Equal(t, tt.reason, denied.Decision.Reason)
			assert.Equal(t, tt.daysLeft, denied.Decision.DaysLeft)
		})
	}
}

func TestRateItem_RejectedIsFreelyEditable(t *testing.T) {
	f := newRatingFixture(t)
	f.expectSubskillItem()
	f.expectSkillRecord(7, nil)
	existing := &models.EmployeeRating{ID: 12, UserID: 7, SkillID: 1, SubskillID: uintPtr(10),
		Rating: progression.LevelHigh, Status: progression.StatusRejected}
	f.expectExisting(7, existing)
	f.ratings.On("UpdateByOwner", mock.Anything, mock.MatchedBy(func(r *models.EmployeeRating) bool {
		return r.ID == 12 && r.Rating == progression.LevelLow && r.Status == progression.StatusDraft
	}), progression.StatusRejected, []models.Notification(nil)).Return(nil)
	f.cache.On("InvalidateUser", mock.Anything, uint(7)).Return(nil)

	rating, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, SubskillID: uintPtr(10), Rating: progression.LevelLow})
	require.NoError(t, err)
	assert.Equal(t, progression.LevelLow, rating.Rating)
	// the stored record is untouched until the repository accepts the write
	assert.Equal(t, progression.LevelHigh, existing.Rating)
}

func TestRateItem_ConcurrentChange(t *testing.T) {
	f := newRatingFixture(t)
	f.expectSubskillItem()
	f.expectSkillRecord(7, nil)
	f.expectExisting(7, &models.EmployeeRating{ID: 12, UserID: 7, Rating: progression.LevelLow, Status: progression.StatusDraft})
	f.ratings.On("UpdateByOwner", mock.Anything, mock.Anything, progression.StatusDraft, []models.Notification(nil)).
		Return(progression.ErrInvalidTransition)

	_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, SubskillID: uintPtr(10), Rating: progression.LevelMedium})
	require.ErrorIs(t, err, progression.ErrInvalidTransition)
	assert.Empty(t, f.audit.entries)
}

func TestRateItem_Rejections(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		f := newRatingFixture(t)
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, Rating: "expert"})
		require.ErrorIs(t, err, progression.ErrInvalidRatingLevel)
	})

	t.Run("owner cannot approve", func(t *testing.T) {
		f := newRatingFixture(t)
		f.expectSubskillItem()
		f.expectSkillRecord(7, nil)
		f.expectExisting(7, nil)
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{
			SkillID: 1, SubskillID: uintPtr(10), Rating: progression.LevelLow, Status: progression.StatusApproved,
		})
		require.ErrorIs(t, err, progression.ErrInvalidTransition)
	})

	t.Run("skill marked not applicable", func(t *testing.T) {
		f := newRatingFixture(t)
		f.expectSubskillItem()
		f.expectSkillRecord(7, &models.EmployeeRating{ID: 2, NAStatus: true, Status: progression.StatusDraft, Rating: progression.LevelLow})
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, SubskillID: uintPtr(10), Rating: progression.LevelLow})
		require.ErrorIs(t, err, ErrNotApplicable)
	})

	t.Run("skill with subskills", func(t *testing.T) {
		f := newRatingFixture(t)
		f.catalog.On("GetSkillByID", mock.Anything, uint(1)).Return(&models.Skill{ID: 1, Name: "Go"}, nil)
		f.catalog.On("CountSubskills", mock.Anything, uint(1)).Return(3, nil)
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, Rating: progression.LevelLow})
		require.ErrorIs(t, err, ErrRateSubskills)
	})

	t.Run("subskill of another skill", func(t *testing.T) {
		f := newRatingFixture(t)
		f.catalog.On("GetSkillByID", mock.Anything, uint(1)).Return(&models.Skill{ID: 1, Name: "Go"}, nil)
		f.catalog.On("GetSubskillByID", mock.Anything, uint(10)).Return(&models.Subskill{ID: 10, SkillID: 2}, nil)
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, SubskillID: uintPtr(10), Rating: progression.LevelLow})
		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown skill", func(t *testing.T) {
		f := newRatingFixture(t)
		f.catalog.On("GetSkillByID", mock.Anything, uint(1)).Return(nil, nil)
		_, err := f.svc.RateItem(t.Context(), employee, RateInput{SkillID: 1, Rating: progression.LevelLow})
		require.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestSubmit(t *testing.T) {
	details := func(status progression.Status, owner uint) *models.EmployeeRatingWithDetails {
		return &models.EmployeeRatingWithDetails{
			EmployeeRating: models.EmployeeRating{ID: 12, UserID: owner, SkillID: 1, SubskillID: uintPtr(10),
				Rating: progression.LevelMedium, Status: status},
			SkillName:    "Go",
			SubskillName: func() *string { s := "Testing"; return &s }(),
		}
	}

	t.Run("rejected rating is resubmitted", func(t *testing.T) {
		f := newRatingFixture(t)
		f.ratings.On("GetWithDetails", mock.Anything, uint(12)).Return(details(progression.StatusRejected, 7), nil)
		f.expectSkillRecord(7, nil)
		f.users.On("ListByRoles", mock.Anything, progression.ReviewerRoles).Return([]models.User{{ID: 4, Role: progression.RoleManager}}, nil)
		f.ratings.On("UpdateByOwner", mock.Anything, mock.MatchedBy(func(r *models.EmployeeRating) bool {
			return r.Status == progression.StatusSubmitted && r.SubmittedAt != nil
		}), progression.StatusRejected, mock.MatchedBy(func(n []models.Notification) bool {
			return len(n) == 1 && n[0].Message == "Dana Dev has submitted a skill rating for Go - Testing that requires your approval."
		})).Return(nil)
		f.cache.On("InvalidateUser", mock.Anything, uint(7)).Return(nil)

		rating, err := f.svc.Submit(t.Context(), employee, 12)
		require.NoError(t, err)
		assert.Equal(t, progression.StatusSubmitted, rating.Status)
		require.Len(t, f.audit.entries, 1)
		assert.Equal(t, AuditSubmit, f.audit.entries[0].Action)
	})

	t.Run("approved rating cannot be resubmitted", func(t *testing.T) {
		f := newRatingFixture(t)
		f.ratings.On("GetWithDetails", mock.Anything, uint(12)).Return(details(progression.StatusApproved, 7), nil)
		f.expectSkillRecord(7, nil)
		_, err := f.svc.Submit(t.Context(), employee, 12)
		require.ErrorIs(t, err, progression.ErrInvalidTransition)
	})

	t.Run("someone else's rating", func(t *testing.T) {
		f := newRatingFixture(t)
		f.ratings.On("GetWithDetails", mock.Anything, uint(12)).Return(details(progression.StatusDraft, 8), nil)
		_, err := f.svc.Submit(t.Context(), employee, 12)
		require.ErrorIs(t, err, ErrRatingNotFound)
	})
}

func TestOptions(t *testing.T) {
	t.Run("never rated", func(t *testing.T) {
		f := newRatingFixture(t)
		f.expectSubskillItem()
		f.expectSkillRecord(7, nil)
		f.expectExisting(7, nil)

		res, err := f.svc.Options(t.Context(), 7, 1, uintPtr(10))
		require.NoError(t, err)
		assert.Equal(t, []progression.Level{progression.LevelLow, progression.LevelMedium, progression.LevelHigh}, res.Options)
		assert.Nil(t, res.Current)
	})

	t.Run("approved medium after cool-down", func(t *testing.T) {
		f := newRatingFixture(t)
		f.expectSubskillItem()
		f.expectSkillRecord(7, nil)
		past := fixedNow.Add(-time.Hour)
		f.expectExisting(7, &models.EmployeeRating{ID: 3, Rating: progression.LevelMedium, Status: progression.StatusApproved, NextUpgradeDate: &past})

		res, err := f.svc.Options(t.Context(), 7, 1, uintPtr(10))
		require.NoError(t, err)
		assert.Equal(t, []progression.Level{progression.LevelHigh}, res.Options)
		assert.Equal(t, levelPtr(progression.LevelMedium), res.Current)
		assert.Equal(t, progression.ReasonUpgradeOnly, res.Decisions[progression.LevelLow].Reason)
		assert.True(t, res.Decisions[progression.LevelHigh].Allowed)
	})

	t.Run("not applicable skill has no options", func(t *testing.T) {
		f := newRatingFixture(t)
		f.expectSubskillItem()
		f.expectSkillRecord(7, &models.EmployeeRating{ID: 2, NAStatus: true, Status: progression.StatusDraft, Rating: progression.LevelLow})
		f.expectExisting(7, nil)

		res, err := f.svc.Options(t.Context(), 7, 1, uintPtr(10))
		require.NoError(t, err)
		assert.True(t, res.NotApplicable)
		assert.Empty(t, res.Options)
	})
}

func TestHistory_Visibility(t *testing.T) {
	f := newRatingFixture(t)
	f.ratings.On("GetByID", mock.Anything, uint(12)).Return(&models.EmployeeRating{ID: 12, UserID: 8}, nil)
	f.ratings.On("ListHistory", mock.Anything, uint(12)).Return([]models.SkillRatingHistory{{ID: 1, RatingID: 12}}, nil).Once()

	_, err := f.svc.History(t.Context(), employee, 12)
	require.ErrorIs(t, err, ErrRatingNotFound)

	manager := &models.User{ID: 4, Role: progression.RoleManager}
	history, err := f.svc.History(t.Context(), manager, 12)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSetNotApplicable(t *testing.T) {
	t.Run("employees may not", func(t *testing.T) {
		f := newRatingFixture(t)
		_, err := f.svc.SetNotApplicable(t.Context(), employee, 7, 1, true)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager flags a skill", func(t *testing.T) {
		f := newRatingFixture(t)
		manager := &models.User{ID: 4, Role: progression.RoleManager}
		f.users.On("GetByID", mock.Anything, uint(7)).Return(employee, nil)
		f.catalog.On("GetSkillByID", mock.Anything, uint(1)).Return(&models.Skill{ID: 1, Name: "Go"}, nil)
		f.ratings.On("SetNotApplicable", mock.Anything, uint(7), uint(1), true).
			Return(&models.EmployeeRating{ID: 30, UserID: 7, SkillID: 1, NAStatus: true}, nil)
		f.cache.On("InvalidateUser", mock.Anything, uint(7)).Return(nil)

		rating, err := f.svc.SetNotApplicable(t.Context(), manager, 7, 1, true)
		require.NoError(t, err)
		assert.True(t, rating.NAStatus)
		require.Len(t, f.audit.entries, 1)
		assert.Equal(t, uint(4), *f.audit.entries[0].UserID)
	})
}
