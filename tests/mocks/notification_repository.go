package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.AdminNotification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationRepository) List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) ([]domain.AdminNotification, int64, error) {
	args := m.Called(ctx, filters, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.AdminNotification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) CountBySeverity(ctx context.Context) (map[domain.NotificationSeverity]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.NotificationSeverity]int64), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, onlyRead bool) (int64, error) {
	args := m.Called(ctx, cutoff, onlyRead)
	return args.Get(0).(int64), args.Error(1)
}
