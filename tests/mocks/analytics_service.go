package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
)

type AnalyticsService struct {
	mock.Mock
}

func (m *AnalyticsService) Track(ctx context.Context, userID uuid.UUID, eventType domain.EventType, data map[string]interface{}) error {
	args := m.Called(ctx, userID, eventType, data)
	return args.Error(0)
}
