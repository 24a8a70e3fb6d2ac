package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"skilltrack/internal/metrics"
	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

// RatingService handles an employee's own ratings
type RatingService struct {
	ratingRepo  ratingStore
	catalogRepo catalogStore
	userRepo    userStore
	audit       *AuditService
	cache       ProgressCache
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewRatingService creates a new rating service. cache may be nil and now
// defaults to time.Now.
func NewRatingService(
	ratingRepo ratingStore,
	catalogRepo catalogStore,
	userRepo userStore,
	audit *AuditService,
	cache ProgressCache,
	m *metrics.Metrics,
	now func() time.Time,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		audit:       audit,
		cache:       cache,
		metrics:     m,
		now:         defaultClock(now),
	}
}

// RateInput is an owner's change to one skill or subskill
type RateInput struct {
	SkillID     uint               `json:"skill_id"`
	SubskillID  *uint              `json:"subskill_id,omitempty"`
	Rating      progression.Level  `json:"rating"`
	Status      progression.Status `json:"status,omitempty"` // draft (default) or submitted
	SelfComment *string            `json:"self_comment,omitempty"`
}

// ratedItem is a resolved rating target
type ratedItem struct {
	skill    *models.Skill
	subskill *models.Subskill
}

func (i ratedItem) title() string {
	if i.subskill != nil {
		return i.skill.Name + " - " + i.subskill.Name
	}
	return i.skill.Name
}

// resolveItem checks that the item exists and may be rated directly
func (s *RatingService) resolveItem(ctx context.Context, skillID uint, subskillID *uint) (ratedItem, error) {
	skill, err := s.catalogRepo.GetSkillByID(ctx, skillID)
	if err != nil {
		return ratedItem{}, err
	}
	if skill == nil {
		return ratedItem{}, ErrItemNotFound
	}

	if subskillID != nil {
		sub, err := s.catalogRepo.GetSubskillByID(ctx, *subskillID)
		if err != nil {
			return ratedItem{}, err
		}
		if sub == nil || sub.SkillID != skillID {
			return ratedItem{}, ErrItemNotFound
		}
		return ratedItem{skill: skill, subskill: sub}, nil
	}

	n, err := s.catalogRepo.CountSubskills(ctx, skillID)
	if err != nil {
		return ratedItem{}, err
	}
	if n > 0 {
		return ratedItem{}, ErrRateSubskills
	}
	return ratedItem{skill: skill}, nil
}

// skillNotApplicable reports whether the user's skill-level record carries the NA flag
func (s *RatingService) skillNotApplicable(ctx context.Context, userID, skillID uint) (bool, error) {
	rec, err := s.ratingRepo.GetByUserAndTarget(ctx, userID, skillID, nil)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.NAStatus, nil
}

// RateItem creates or changes the user's rating of one item, either as a
// draft or directly submitted for approval.
func (s *RatingService) RateItem(ctx context.Context, user *models.User, in RateInput) (*models.EmployeeRating, error) {
	if !in.Rating.Valid() {
		return nil, fmt.Errorf("%w: %q", progression.ErrInvalidRatingLevel, string(in.Rating))
	}
	if in.Status == "" {
		in.Status = progression.StatusDraft
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", progression.ErrInvalidStatus, string(in.Status))
	}

	item, err := s.resolveItem(ctx, in.SkillID, in.SubskillID)
	if err != nil {
		return nil, err
	}
	na, err := s.skillNotApplicable(ctx, user.ID, in.SkillID)
	if err != nil {
		return nil, err
	}
	if na {
		return nil, ErrNotApplicable
	}

	existing, err := s.ratingRepo.GetByUserAndTarget(ctx, user.ID, in.SkillID, in.SubskillID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := progression.StatusDraft
	var current *progression.Level
	var nextUpgrade *time.Time
	if existing != nil {
		from = existing.Status
		current = &existing.Rating
		nextUpgrade = existing.NextUpgradeDate
	}

	decision, err := progression.CanUpgrade(current, in.Rating, from, nextUpgrade, now)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &UpgradeDeniedError{Decision: decision}
	}
	if err := progression.CheckEdit(from, in.Status); err != nil {
		return nil, err
	}

	rating := &models.EmployeeRating{
		UserID:      user.ID,
		SkillID:     in.SkillID,
		SubskillID:  in.SubskillID,
		Rating:      in.Rating,
		Status:      in.Status,
		SelfComment: optionalComment(in.SelfComment),
	}
	if existing != nil {
		copied := *existing
		copied.Rating = in.Rating
		copied.Status = in.Status
		copied.SelfComment = optionalComment(in.SelfComment)
		copied.SubmittedAt = nil
		rating = &copied
	}

	var notifications []models.Notification
	if in.Status == progression.StatusSubmitted {
		rating.SubmittedAt = &now
		notifications, err = s.reviewerNotifications(ctx, user, item.title())
		if err != nil {
			return nil, err
		}
	}

	if existing == nil {
		err = s.ratingRepo.Create(ctx, rating, notifications)
	} else {
		err = s.ratingRepo.UpdateByOwner(ctx, rating, existing.Status, notifications)
	}
	if err != nil {
		if errors.Is(err, progression.ErrInvalidTransition) {
			s.metrics.TransitionConflicts.Inc()
		}
		return nil, err
	}

	s.recordOwnerChange(ctx, user, rating, item.title(), len(notifications))
	return rating, nil
}

// Submit sends a draft or rejected rating for approval unchanged
func (s *RatingService) Submit(ctx context.Context, user *models.User, ratingID uint) (*models.EmployeeRating, error) {
	details, err := s.ratingRepo.GetWithDetails(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if details == nil || details.UserID != user.ID {
		return nil, ErrRatingNotFound
	}

	na, err := s.skillNotApplicable(ctx, user.ID, details.SkillID)
	if err != nil {
		return nil, err
	}
	if na {
		return nil, ErrNotApplicable
	}
	if details.Status != progression.StatusDraft && details.Status != progression.StatusRejected {
		return nil, fmt.Errorf("%w: cannot submit a %s rating", progression.ErrInvalidTransition, details.Status)
	}

	now := s.now()
	rating := details.EmployeeRating
	rating.Status = progression.StatusSubmitted
	rating.SubmittedAt = &now

	notifications, err := s.reviewerNotifications(ctx, user, details.ItemTitle())
	if err != nil {
		return nil, err
	}
	if err := s.ratingRepo.UpdateByOwner(ctx, &rating, details.Status, notifications); err != nil {
		if errors.Is(err, progression.ErrInvalidTransition) {
			s.metrics.TransitionConflicts.Inc()
		}
		return nil, err
	}

	s.recordOwnerChange(ctx, user, &rating, details.ItemTitle(), len(notifications))
	return &rating, nil
}

func (s *RatingService) reviewerNotifications(ctx context.Context, submitter *models.User, itemTitle string) ([]models.Notification, error) {
	reviewers, err := s.userRepo.ListByRoles(ctx, progression.ReviewerRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	return submissionNotifications(reviewers, submitter, itemTitle), nil
}

func (s *RatingService) recordOwnerChange(ctx context.Context, user *models.User, rating *models.EmployeeRating, itemTitle string, notified int) {
	transition, action := "draft", AuditRate
	if rating.Status == progression.StatusSubmitted {
		transition, action = "submit", AuditSubmit
		s.metrics.NotificationsRequested.WithLabelValues("submission").Add(float64(notified))
	}
	s.metrics.RatingTransitionsTotal.WithLabelValues(transition).Inc()

	slog.Info("Rating saved",
		"rating_id", rating.ID,
		"user_id", user.ID,
		"target", rating.Target().String(),
		"rating", rating.Rating,
		"status", rating.Status,
		"reviewers_notified", notified,
	)
	s.audit.Log(ctx, user.ID, action, "rating",
		fmt.Sprintf("%s rating %d for %s: %s", rating.Status, rating.ID, itemTitle, rating.Rating))
	invalidateProgress(ctx, s.cache, user.ID)
}

// ListMine returns the user's ratings, optionally limited to one category
func (s *RatingService) ListMine(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error) {
	return s.ratingRepo.ListByUser(ctx, userID, categoryID)
}

// RatingOptions describes which levels the user may pick for an item
type RatingOptions struct {
	Current         *progression.Level                         `json:"current,omitempty"`
	Status          *progression.Status                        `json:"status,omitempty"`
	NextUpgradeDate *time.Time                                 `json:"next_upgrade_date,omitempty"`
	NotApplicable   bool                                       `json:"not_applicable"`
	Options         []progression.Level                        `json:"options"`
	Decisions       map[progression.Level]progression.Decision `json:"decisions"`
}

// Options resolves the selectable levels for an item at the current time
func (s *RatingService) Options(ctx context.Context, userID, skillID uint, subskillID *uint) (*RatingOptions, error) {
	if _, err := s.resolveItem(ctx, skillID, subskillID); err != nil {
		return nil, err
	}
	na, err := s.skillNotApplicable(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByUserAndTarget(ctx, userID, skillID, subskillID)
	if err != nil {
		return nil, err
	}

	res := &RatingOptions{
		NotApplicable: na,
		Options:       []progression.Level{},
		Decisions:     make(map[progression.Level]progression.Decision, len(progression.Levels)),
	}
	status := progression.StatusDraft
	if existing != nil {
		res.Current = &existing.Rating
		res.Status = &existing.Status
		res.NextUpgradeDate = existing.NextUpgradeDate
		status = existing.Status
	}
	if na {
		return res, nil
	}

	now := s.now()
	res.Options, err = progression.AvailableOptions(res.Current, status, res.NextUpgradeDate, now)
	if err != nil {
		return nil, err
	}
	for _, level := range progression.Levels {
		d, err := progression.CanUpgrade(res.Current, level, status, res.NextUpgradeDate, now)
		if err != nil {
			return nil, err
		}
		res.Decisions[level] = d
	}
	return res, nil
}

// History lists the approvals of a rating. Owners see their own, reviewers any.
func (s *RatingService) History(ctx context.Context, viewer *models.User, ratingID uint) ([]models.SkillRatingHistory, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating == nil || (rating.UserID != viewer.ID && !viewer.Role.IsReviewer()) {
		return nil, ErrRatingNotFound
	}
	return s.ratingRepo.ListHistory(ctx, ratingID)
}

// SetNotApplicable flags a skill as not applicable to a user, which removes
// it from their progress. Only managers and admins may do this.
func (s *RatingService) SetNotApplicable(ctx context.Context, actor *models.User, userID, skillID uint, na bool) (*models.EmployeeRating, error) {
	if actor.Role != progression.RoleAdmin && actor.Role != progression.RoleManager {
		return nil, ErrForbidden
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	skill, err := s.catalogRepo.GetSkillByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, ErrItemNotFound
	}

	rating, err := s.ratingRepo.SetNotApplicable(ctx, userID, skillID, na)
	if err != nil {
		return nil, err
	}

	slog.Info("Skill applicability changed", "user_id", userID, "skill_id", skillID, "na", na, "by", actor.ID)
	s.audit.Log(ctx, actor.ID, AuditSetNotApplicable, "rating",
		fmt.Sprintf("Set not applicable=%t for user %d on skill %s", na, userID, skill.Name))
	invalidateProgress(ctx, s.cache, userID)
	return rating, nil
}

// invalidateProgress drops cached progress after a write. A failure leaves
// entries to expire with their TTL.
func invalidateProgress(ctx context.Context, cache ProgressCache, userID uint) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate progress cache", "user_id", userID, "error", err)
	}
}
