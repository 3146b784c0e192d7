package unit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/dashboard"
	"cagnotte-backend/tests/mocks"
)

func TestDashboardService_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now()

	t.Run("Empty Account", func(t *testing.T) {
		mockRepo := new(mocks.GoalRepository)
		svc := dashboard.NewService(mockRepo)

		mockRepo.On("ListAllByUser", ctx, userID, domain.GoalFilters{}).Return([]domain.Goal{}, nil).Once()

		result, err := svc.Get(ctx, userID)

		assert.NoError(t, err)
		assert.Empty(t, result.RecentGoals)
		assert.Empty(t, result.NearCompletion)
		assert.Equal(t, 0, result.Statistics.TotalGoals)
		assert.Len(t, result.Statistics.ByTimeframe, 2)
	})

	t.Run("Recent Goals Are Active Newest First Capped At Five", func(t *testing.T) {
		mockRepo := new(mocks.GoalRepository)
		svc := dashboard.NewService(mockRepo)

		goals := make([]domain.Goal, 0, 8)
		for i := 0; i < 7; i++ {
			goals = append(goals, domain.Goal{
				ID:        uuid.New(),
				Name:      fmt.Sprintf("objectif-%d", i),
				Status:    domain.GoalStatusActive,
				Timeframe: domain.TimeframeShort,
				Category:  domain.CategorySurvival,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			})
		}
		goals = append(goals, domain.Goal{
			ID:        uuid.New(),
			Name:      "terminé",
			Status:    domain.GoalStatusCompleted,
			Timeframe: domain.TimeframeShort,
			Category:  domain.CategorySurvival,
			CreatedAt: base.Add(100 * time.Hour),
		})

		mockRepo.On("ListAllByUser", ctx, userID, domain.GoalFilters{}).Return(goals, nil).Once()

		result, err := svc.Get(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, result.RecentGoals, 5)
		assert.Equal(t, "objectif-6", result.RecentGoals[0].Name)
		assert.Equal(t, "objectif-2", result.RecentGoals[4].Name)
		for _, g := range result.RecentGoals {
			assert.Equal(t, domain.GoalStatusActive, g.Status)
		}
	})

	t.Run("Near Completion Requires Active And At Least 80 Percent", func(t *testing.T) {
		mockRepo := new(mocks.GoalRepository)
		svc := dashboard.NewService(mockRepo)

		goals := []domain.Goal{
			{Name: "a-79", Status: domain.GoalStatusActive, ProgressPercentage: 79, Timeframe: domain.TimeframeShort, Category: domain.CategorySurvival},
			{Name: "b-80", Status: domain.GoalStatusActive, ProgressPercentage: 80, Timeframe: domain.TimeframeShort, Category: domain.CategorySurvival},
			{Name: "c-95", Status: domain.GoalStatusActive, ProgressPercentage: 95, Timeframe: domain.TimeframeShort, Category: domain.CategorySurvival},
			{Name: "d-90-paused", Status: domain.GoalStatusPaused, ProgressPercentage: 90, Timeframe: domain.TimeframeShort, Category: domain.CategorySurvival},
			{Name: "e-100-completed", Status: domain.GoalStatusCompleted, ProgressPercentage: 100, Timeframe: domain.TimeframeShort, Category: domain.CategorySurvival},
		}

		mockRepo.On("ListAllByUser", ctx, userID, domain.GoalFilters{}).Return(goals, nil).Once()

		result, err := svc.Get(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, result.NearCompletion, 2)
		assert.Equal(t, "c-95", result.NearCompletion[0].Name)
		assert.Equal(t, "b-80", result.NearCompletion[1].Name)
	})
}
