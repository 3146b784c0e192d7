package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/notification"
	"cagnotte-backend/tests/mocks"
)

func TestNotificationService_NotifyHighValueGoal(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Username: "fatou"}

	t.Run("Below Threshold Emits Nothing", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo)

		goal := &domain.Goal{ID: uuid.New(), Name: "Vélo", TargetAmount: 9999.99}

		err := svc.NotifyHighValueGoal(ctx, user, goal)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("At Threshold Emits", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo)

		goal := &domain.Goal{ID: uuid.New(), Name: "Maison", TargetAmount: 10000}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.AdminNotification) bool {
			return n.Type == domain.NotifGoalHighValue &&
				n.Severity == domain.SeverityInfo &&
				n.UserID != nil && *n.UserID == user.ID &&
				n.GoalID != nil && *n.GoalID == goal.ID
		})).Return(nil).Once()

		err := svc.NotifyHighValueGoal(ctx, user, goal)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestNotificationService_LogAdminAction(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
	target := &domain.User{ID: uuid.New(), Username: "moussa", Email: "moussa@example.com"}

	cases := []struct {
		action   notification.AdminAction
		severity domain.NotificationSeverity
	}{
		{notification.ActionUserUpdated, domain.SeverityInfo},
		{notification.ActionUserPromoted, domain.SeverityWarning},
		{notification.ActionUserDemoted, domain.SeverityWarning},
		{notification.ActionUserDeleted, domain.SeverityCritical},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			mockRepo := new(mocks.NotificationRepository)
			svc := notification.NewService(mockRepo)

			mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.AdminNotification) bool {
				return n.Type == domain.NotifAdminAction &&
					n.Severity == tc.severity &&
					n.AdminID != nil && *n.AdminID == admin.ID
			})).Return(nil).Once()

			err := svc.LogAdminAction(ctx, admin, tc.action, target, nil, nil)

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_Summary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(mockRepo)

	mockRepo.On("CountBySeverity", ctx).Return(map[domain.NotificationSeverity]int64{
		domain.SeverityInfo:     7,
		domain.SeveritySuccess:  2,
		domain.SeverityWarning:  1,
		domain.SeverityCritical: 0,
	}, nil).Once()
	mockRepo.On("CountUnread", ctx).Return(int64(4), nil).Once()

	summary, err := svc.Summary(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), summary.Total)
	assert.Equal(t, int64(4), summary.Unread)
	assert.Equal(t, int64(0), summary.BySeverity[domain.SeverityCritical])
}

func TestNotificationService_CleanupOld(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(mockRepo)

	mockRepo.On("DeleteOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		// Default retention is 30 days when the caller passes junk.
		expected := time.Now().AddDate(0, 0, -30)
		return cutoff.Sub(expected) < time.Minute && expected.Sub(cutoff) < time.Minute
	}), true).Return(int64(12), nil).Once()

	deleted, err := svc.CleanupOld(ctx, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	mockRepo.AssertExpectations(t)
}
