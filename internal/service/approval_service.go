package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skilltrack/internal/metrics"
	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
)

// ApprovalService lets reviewers decide submitted ratings
type ApprovalService struct {
	ratingRepo ratingStore
	userRepo   userStore
	audit      *AuditService
	cache      ProgressCache
	metrics    *metrics.Metrics
	coolDown   time.Duration
	now        func() time.Time
}

// NewApprovalService creates a new approval service. coolDown is the wait
// after an approval before the owner may upgrade again.
func NewApprovalService(
	ratingRepo ratingStore,
	userRepo userStore,
	audit *AuditService,
	cache ProgressCache,
	m *metrics.Metrics,
	coolDown time.Duration,
	now func() time.Time,
) *ApprovalService {
	return &ApprovalService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		audit:      audit,
		cache:      cache,
		metrics:    m,
		coolDown:   coolDown,
		now:        defaultClock(now),
	}
}

// Approve approves a submitted rating. The comment is optional.
func (s *ApprovalService) Approve(ctx context.Context, ratingID, reviewerID uint, comment *string) (*models.EmployeeRating, error) {
	text := ""
	if comment != nil {
		text = *comment
	}
	return s.decide(ctx, progression.ActionApprove, ratingID, reviewerID, text)
}

// Reject rejects a submitted rating. A non-blank comment is required.
func (s *ApprovalService) Reject(ctx context.Context, ratingID, reviewerID uint, comment string) (*models.EmployeeRating, error) {
	return s.decide(ctx, progression.ActionReject, ratingID, reviewerID, comment)
}

func (s *ApprovalService) decide(ctx context.Context, action progression.ReviewAction, ratingID, reviewerID uint, comment string) (*models.EmployeeRating, error) {
	if action == progression.ActionReject && strings.TrimSpace(comment) == "" {
		return nil, progression.ErrCommentRequired
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrForbidden
	}

	details, err := s.ratingRepo.GetWithDetails(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrRatingNotFound
	}

	trimmed, err := progression.CheckReview(action, details.Status, details.UserID,
		progression.Reviewer{ID: reviewer.ID, Role: reviewer.Role}, comment)
	if err != nil {
		if errors.Is(err, progression.ErrReviewerRequired) {
			return nil, fmt.Errorf("%w: %w", ErrForbidden, err)
		}
		return nil, err
	}

	now := s.now()
	update := repository.ReviewUpdate{
		RatingID:   ratingID,
		Status:     action.ResultStatus(),
		ReviewerID: reviewer.ID,
		DecidedAt:  now,
	}
	if trimmed != "" {
		update.Comment = &trimmed
	}
	if action == progression.ActionApprove {
		update.NextUpgrade = progression.NextUpgradeDate(details.Rating, now, s.coolDown)
	}

	notification := decisionNotification(action, details.UserID, details.ItemTitle(), trimmed)
	rating, err := s.ratingRepo.ApplyReview(ctx, update, notification)
	if err != nil {
		if errors.Is(err, progression.ErrInvalidTransition) {
			s.metrics.TransitionConflicts.Inc()
			slog.Warn("Rating decision lost to a concurrent change", "rating_id", ratingID, "reviewer_id", reviewer.ID, "action", action)
		}
		return nil, err
	}

	s.metrics.RatingTransitionsTotal.WithLabelValues(string(action)).Inc()
	s.metrics.NotificationsRequested.WithLabelValues("decision").Inc()
	slog.Info("Rating decided",
		"rating_id", rating.ID,
		"owner_id", rating.UserID,
		"reviewer_id", reviewer.ID,
		"action", action,
		"rating", rating.Rating,
	)

	auditAction := AuditApprove
	if action == progression.ActionReject {
		auditAction = AuditReject
	}
	s.audit.Log(ctx, reviewer.ID, auditAction, "rating",
		fmt.Sprintf("%s rating %d of %s for %s", rating.Status, rating.ID, details.UserEmail, details.ItemTitle()))
	invalidateProgress(ctx, s.cache, rating.UserID)
	return rating, nil
}

// PendingApprovals lists submitted ratings the reviewer may decide, oldest
// first. Tech leads do not see their own submissions.
func (s *ApprovalService) PendingApprovals(ctx context.Context, reviewer *models.User) ([]models.EmployeeRatingWithDetails, error) {
	if !reviewer.Role.IsReviewer() {
		return nil, ErrForbidden
	}

	pending, err := s.ratingRepo.ListSubmitted(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.EmployeeRatingWithDetails, 0, len(pending))
	for _, p := range pending {
		if reviewer.Role == progression.RoleTechLead && p.UserID == reviewer.ID {
			continue
		}
		visible = append(visible, p)
	}
	return visible, nil
}

// PendingCounts returns, for every reviewer, how many submitted ratings they
// could decide right now.
func (s *ApprovalService) PendingCounts(ctx context.Context) (map[uint]int, error) {
	reviewers, err := s.userRepo.ListByRoles(ctx, progression.ReviewerRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	pending, err := s.ratingRepo.ListSubmitted(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(reviewers))
	for _, r := range reviewers {
		for _, p := range pending {
			if r.Role == progression.RoleTechLead && p.UserID == r.ID {
				continue
			}
			counts[r.ID]++
		}
	}
	return counts, nil
}
