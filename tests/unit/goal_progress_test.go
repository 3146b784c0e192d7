package unit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cagnotte-backend/internal/domain"
)

func TestProgressPercentage(t *testing.T) {
	t.Run("Zero Target", func(t *testing.T) {
		assert.Equal(t, 0, domain.ProgressPercentage(500, 0))
	})

	t.Run("Negative Target", func(t *testing.T) {
		assert.Equal(t, 0, domain.ProgressPercentage(500, -100))
	})

	t.Run("Rounds To Nearest", func(t *testing.T) {
		assert.Equal(t, 33, domain.ProgressPercentage(1, 3))
		assert.Equal(t, 67, domain.ProgressPercentage(2, 3))
		assert.Equal(t, 50, domain.ProgressPercentage(1, 2))
	})

	t.Run("Capped At 100", func(t *testing.T) {
		assert.Equal(t, 100, domain.ProgressPercentage(2500, 1000))
	})

	t.Run("Negative Current Clamped To Zero", func(t *testing.T) {
		assert.Equal(t, 0, domain.ProgressPercentage(-50, 1000))
	})
}

func TestGoal_RecomputeProgress(t *testing.T) {
	now := time.Now()

	t.Run("Records Crossed Milestones", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 60,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}

		goal.RecomputeProgress(now)

		assert.Equal(t, 60, goal.ProgressPercentage)
		assert.Len(t, goal.Milestones, 2)
		assert.True(t, goal.HasMilestone(25))
		assert.True(t, goal.HasMilestone(50))
		assert.False(t, goal.HasMilestone(75))
	})

	t.Run("Milestones Are Monotonic", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 80,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}
		goal.RecomputeProgress(now)
		assert.Len(t, goal.Milestones, 3)
		firstAchievedAt := goal.Milestones[0].AchievedAt

		// Dropping the amount must not remove milestones or duplicate
		// them on the next recompute.
		goal.CurrentAmount = 10
		goal.RecomputeProgress(now.Add(time.Hour))

		assert.Equal(t, 10, goal.ProgressPercentage)
		assert.Len(t, goal.Milestones, 3)
		assert.Equal(t, firstAchievedAt, goal.Milestones[0].AchievedAt)

		goal.CurrentAmount = 80
		goal.RecomputeProgress(now.Add(2 * time.Hour))
		assert.Len(t, goal.Milestones, 3)
	})

	t.Run("Completes Active Goal At 100", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 100,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}

		goal.RecomputeProgress(now)

		assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
		assert.NotNil(t, goal.CompletedAt)
		assert.Equal(t, now, *goal.CompletedAt)
	})

	t.Run("Does Not Complete Paused Goal", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 150,
			TargetAmount:  100,
			Status:        domain.GoalStatusPaused,
		}

		goal.RecomputeProgress(now)

		assert.Equal(t, domain.GoalStatusPaused, goal.Status)
		assert.Nil(t, goal.CompletedAt)
	})

	t.Run("Completion Is Irreversible", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 100,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}
		goal.RecomputeProgress(now)
		completedAt := *goal.CompletedAt

		goal.CurrentAmount = 20
		goal.RecomputeProgress(now.Add(time.Hour))

		assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
		assert.Equal(t, completedAt, *goal.CompletedAt)
		assert.Equal(t, 20, goal.ProgressPercentage)
	})
}

func TestGoal_AddContribution(t *testing.T) {
	now := time.Now()

	t.Run("Appends And Recomputes", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 40,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}

		err := goal.AddContribution(35, "bonus", now)

		assert.NoError(t, err)
		assert.Equal(t, 75.0, goal.CurrentAmount)
		assert.Equal(t, 75, goal.ProgressPercentage)
		assert.Len(t, goal.Contributions, 1)
		assert.Equal(t, 35.0, goal.Contributions[0].Amount)
		assert.Equal(t, "bonus", goal.Contributions[0].Note)
		assert.True(t, goal.HasMilestone(75))
	})

	t.Run("Rejects Non Positive Amount", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount:      40,
			TargetAmount:       100,
			ProgressPercentage: 40,
			Status:             domain.GoalStatusActive,
		}

		for _, amount := range []float64{0, -10} {
			err := goal.AddContribution(amount, "", now)

			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
			assert.Equal(t, 40.0, goal.CurrentAmount)
			assert.Equal(t, 40, goal.ProgressPercentage)
			assert.Empty(t, goal.Contributions)
		}
	})

	t.Run("Contribution Past Target Completes Goal", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 90,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}

		err := goal.AddContribution(50, "", now)

		assert.NoError(t, err)
		assert.Equal(t, 140.0, goal.CurrentAmount)
		assert.Equal(t, 100, goal.ProgressPercentage)
		assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
	})

	t.Run("Contributions Still Recorded After Completion", func(t *testing.T) {
		goal := &domain.Goal{
			CurrentAmount: 100,
			TargetAmount:  100,
			Status:        domain.GoalStatusActive,
		}
		goal.RecomputeProgress(now)

		err := goal.AddContribution(25, "extra", now.Add(time.Hour))

		assert.NoError(t, err)
		assert.Equal(t, 125.0, goal.CurrentAmount)
		assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
		assert.Len(t, goal.Contributions, 1)
	})
}
