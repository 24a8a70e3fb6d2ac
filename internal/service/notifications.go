package service

import (
	"context"
	"fmt"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

func submissionNotifications(reviewers []models.User, submitter *models.User, itemTitle string) []models.Notification {
	name := submitter.FullName
	if name == "" {
		name = submitter.Email
	}

	var out []models.Notification
	for _, r := range reviewers {
		if r.ID == submitter.ID {
			continue
		}
		out = append(out, models.Notification{
			UserID:  r.ID,
			Title:   "New Skill Rating Approval Required",
			Message: fmt.Sprintf("%s has submitted a skill rating for %s that requires your approval.", name, itemTitle),
			Type:    models.NotificationInfo,
		})
	}
	return out
}

func decisionNotification(action progression.ReviewAction, ownerID uint, itemTitle, comment string) *models.Notification {
	n := &models.Notification{UserID: ownerID}
	if action == progression.ActionApprove {
		n.Title = "Skill Rating Approved"
		n.Message = fmt.Sprintf("Your skill rating for %s has been approved.", itemTitle)
		n.Type = models.NotificationSuccess
	} else {
		n.Title = "Skill Rating Rejected"
		n.Message = fmt.Sprintf("Your skill rating for %s has been rejected.", itemTitle)
		n.Type = models.NotificationWarning
	}
	if comment != "" {
		n.Message += " Comment: " + comment
	}
	return n
}

func pendingDigestNotification(reviewerID uint, count int) models.Notification {
	return models.Notification{
		UserID:  reviewerID,
		Title:   "Pending Skill Approvals",
		Message: fmt.Sprintf("You have %d skill ratings awaiting your approval.", count),
		Type:    models.NotificationInfo,
	}
}

// NotificationService exposes a user's stored notifications
type NotificationService struct {
	notificationRepo notificationStore
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo notificationStore) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the newest notifications of a user
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	switch {
	case limit <= 0:
		limit = 50
	case limit > 200:
		limit = 200
	}
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	ok, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

// SendPendingDigests writes one reminder per reviewer with work waiting
func (s *NotificationService) SendPendingDigests(ctx context.Context, counts map[uint]int) (int, error) {
	var batch []models.Notification
	for reviewerID, n := range counts {
		if n > 0 {
			batch = append(batch, pendingDigestNotification(reviewerID, n))
		}
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.notificationRepo.CreateMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("failed to store digests: %w", err)
	}
	return len(batch), nil
}
