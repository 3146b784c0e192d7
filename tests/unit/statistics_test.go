package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cagnotte-backend/internal/domain"
)

func TestComputeStatistics_EmptySet(t *testing.T) {
	stats := domain.ComputeStatistics(nil)

	assert.Equal(t, 0, stats.TotalGoals)
	assert.Equal(t, 0, stats.OverallProgress)

	// Every bucket exists even with no goals.
	assert.Len(t, stats.ByTimeframe, 2)
	assert.Len(t, stats.ByCategory, 3)
	for _, tf := range domain.GoalTimeframes() {
		bucket, ok := stats.ByTimeframe[tf]
		assert.True(t, ok)
		assert.Equal(t, domain.BucketStats{}, bucket)
	}
	for _, cat := range domain.GoalCategories() {
		bucket, ok := stats.ByCategory[cat]
		assert.True(t, ok)
		assert.Equal(t, domain.BucketStats{}, bucket)
	}
}

func TestComputeStatistics_Rollup(t *testing.T) {
	goals := []domain.Goal{
		{
			Status:        domain.GoalStatusActive,
			Timeframe:     domain.TimeframeShort,
			Category:      domain.CategorySurvival,
			CurrentAmount: 500,
			TargetAmount:  1000,
		},
		{
			Status:        domain.GoalStatusCompleted,
			Timeframe:     domain.TimeframeLong,
			Category:      domain.CategoryLifestyle,
			CurrentAmount: 2000,
			TargetAmount:  2000,
		},
		{
			Status:        domain.GoalStatusPaused,
			Timeframe:     domain.TimeframeShort,
			Category:      domain.CategorySurvival,
			CurrentAmount: 100,
			TargetAmount:  400,
		},
	}

	stats := domain.ComputeStatistics(goals)

	assert.Equal(t, 3, stats.TotalGoals)
	assert.Equal(t, 1, stats.ActiveGoals)
	assert.Equal(t, 1, stats.CompletedGoals)
	assert.Equal(t, 1, stats.PausedGoals)
	assert.Equal(t, 3400.0, stats.TotalTargetAmount)
	assert.Equal(t, 2600.0, stats.TotalCurrentAmount)
	assert.Equal(t, 76, stats.OverallProgress)

	short := stats.ByTimeframe[domain.TimeframeShort]
	assert.Equal(t, 2, short.Count)
	assert.Equal(t, 1400.0, short.TargetAmount)
	assert.Equal(t, 600.0, short.CurrentAmount)
	assert.Equal(t, 43, short.Progress)

	necessity := stats.ByCategory[domain.CategoryNecessity]
	assert.Equal(t, 0, necessity.Count)
	assert.Equal(t, 0, necessity.Progress)
}

func TestComputeStatistics_AggregateProgressNotCapped(t *testing.T) {
	goals := []domain.Goal{
		{
			Status:        domain.GoalStatusCompleted,
			Timeframe:     domain.TimeframeShort,
			Category:      domain.CategoryNecessity,
			CurrentAmount: 3000,
			TargetAmount:  1000,
		},
	}

	stats := domain.ComputeStatistics(goals)

	assert.Equal(t, 300, stats.OverallProgress)
	assert.Equal(t, 300, stats.ByTimeframe[domain.TimeframeShort].Progress)
	assert.Equal(t, 300, stats.ByCategory[domain.CategoryNecessity].Progress)
}

func TestComputeStatistics_ZeroTargetBucket(t *testing.T) {
	goals := []domain.Goal{
		{
			Status:        domain.GoalStatusActive,
			Timeframe:     domain.TimeframeLong,
			Category:      domain.CategoryLifestyle,
			CurrentAmount: 50,
			TargetAmount:  0,
		},
	}

	stats := domain.ComputeStatistics(goals)

	assert.Equal(t, 0, stats.OverallProgress)
	assert.Equal(t, 0, stats.ByTimeframe[domain.TimeframeLong].Progress)
}
