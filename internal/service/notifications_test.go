package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

func TestSubmissionNotifications_FallsBackToEmail(t *testing.T) {
	submitter := &models.User{ID: 1, Email: "anon@example.com"}
	out := submissionNotifications([]models.User{{ID: 1}, {ID: 2}}, submitter, "SQL")
	require.Len(t, out, 1)
	assert.Equal(t, uint(2), out[0].UserID)
	assert.Equal(t, "anon@example.com has submitted a skill rating for SQL that requires your approval.", out[0].Message)
}

func TestDecisionNotification_WithoutComment(t *testing.T) {
	n := decisionNotification(progression.ActionApprove, 9, "Go - Testing", "")
	assert.Equal(t, uint(9), n.UserID)
	assert.Equal(t, "Your skill rating for Go - Testing has been approved.", n.Message)
}

func TestNotificationService(t *testing.T) {
	t.Run("limit defaults", func(t *testing.T) {
		store := &mockNotificationStore{}
		store.On("ListByUser", mock.Anything, uint(7), true, 50).Return([]models.Notification{{ID: 1}}, nil)
		svc := NewNotificationService(store)

		list, err := svc.List(t.Context(), 7, true, 0)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		store.AssertExpectations(t)
	})

	t.Run("limit is capped", func(t *testing.T) {
		store := &mockNotificationStore{}
		store.On("ListByUser", mock.Anything, uint(7), false, 200).Return(nil, nil)
		_, err := NewNotificationService(store).List(t.Context(), 7, false, 1000)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("mark read of a foreign notification", func(t *testing.T) {
		store := &mockNotificationStore{}
		store.On("MarkRead", mock.Anything, uint(3), uint(7)).Return(false, nil)
		err := NewNotificationService(store).MarkRead(t.Context(), 3, 7)
		require.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("digests skip reviewers without work", func(t *testing.T) {
		store := &mockNotificationStore{}
		store.On("CreateMany", mock.Anything, mock.MatchedBy(func(n []models.Notification) bool {
			return len(n) == 1 && n[0].UserID == 4 &&
				n[0].Title == "Pending Skill Approvals" &&
				n[0].Message == "You have 2 skill ratings awaiting your approval."
		})).Return(nil)

		sent, err := NewNotificationService(store).SendPendingDigests(t.Context(), map[uint]int{3: 0, 4: 2})
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		store.AssertExpectations(t)
	})
}
