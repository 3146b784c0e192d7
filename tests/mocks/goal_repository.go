package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
)

type GoalRepository struct {
	mock.Mock
}

func (m *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error) {
	args := m.Called(ctx, userID, filters, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Goal), args.Get(1).(int64), args.Error(2)
}

func (m *GoalRepository) ListAllByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *GoalRepository) List(ctx context.Context, userID *uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) ([]domain.Goal, int64, error) {
	args := m.Called(ctx, userID, filters, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Goal), args.Get(1).(int64), args.Error(2)
}

func (m *GoalRepository) CountByUser(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) (int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *GoalRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *GoalRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *GoalRepository) CountByStatus(ctx context.Context, status domain.GoalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *GoalRepository) CountByCategory(ctx context.Context) (map[domain.GoalCategory]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.GoalCategory]int64), args.Error(1)
}

func (m *GoalRepository) CountByTimeframe(ctx context.Context) (map[domain.GoalTimeframe]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.GoalTimeframe]int64), args.Error(1)
}

func (m *GoalRepository) SumAmounts(ctx context.Context) (float64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *GoalRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
