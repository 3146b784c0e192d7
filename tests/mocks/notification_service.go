package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotification], error) {
	args := m.Called(ctx, filters, params)
	return args.Get(0).(domain.PaginatedResponse[domain.AdminNotification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CleanupOld(ctx context.Context, daysToKeep int) (int64, error) {
	args := m.Called(ctx, daysToKeep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Summary(ctx context.Context) (*domain.NotificationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationSummary), args.Error(1)
}

func (m *NotificationService) NotifyNewUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *NotificationService) NotifyFirstGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	args := m.Called(ctx, user, goal)
	return args.Error(0)
}

func (m *NotificationService) NotifyGoalCompleted(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	args := m.Called(ctx, user, goal)
	return args.Error(0)
}

func (m *NotificationService) NotifyHighValueGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	args := m.Called(ctx, user, goal)
	return args.Error(0)
}

func (m *NotificationService) NotifyUserMilestone(ctx context.Context, user *domain.User, kind notification.MilestoneKind) error {
	args := m.Called(ctx, user, kind)
	return args.Error(0)
}

func (m *NotificationService) LogAdminAction(ctx context.Context, admin *domain.User, action notification.AdminAction, targetUser *domain.User, targetGoal *domain.Goal, details map[string]interface{}) error {
	args := m.Called(ctx, admin, action, targetUser, targetGoal, details)
	return args.Error(0)
}

func (m *NotificationService) NotifySuspiciousActivity(ctx context.Context, kind string, userID *uuid.UUID, details map[string]interface{}) error {
	args := m.Called(ctx, kind, userID, details)
	return args.Error(0)
}
