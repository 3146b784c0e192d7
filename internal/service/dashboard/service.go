package dashboard

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
)

const (
	recentGoalsLimit    = 5
	nearCompletionLimit = 5
	nearCompletionPct   = 80
)

// Dashboard is the single-call summary for the home screen.
type Dashboard struct {
	Statistics     domain.GoalStatistics `json:"statistics"`
	RecentGoals    []domain.Goal         `json:"recent_goals"`
	NearCompletion []domain.Goal         `json:"near_completion"`
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type service struct {
	goalRepo repository.GoalRepository
}

func NewService(goalRepo repository.GoalRepository) Service {
	return &service{goalRepo: goalRepo}
}

// Get loads the user's goals once and derives every panel from that slice,
// so the three views can never disagree with each other.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	goals, err := s.goalRepo.ListAllByUser(ctx, userID, domain.GoalFilters{})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Statistics:     domain.ComputeStatistics(goals),
		RecentGoals:    recentActive(goals),
		NearCompletion: nearCompletion(goals),
	}, nil
}

func recentActive(goals []domain.Goal) []domain.Goal {
	recent := make([]domain.Goal, 0, recentGoalsLimit)
	for _, g := range goals {
		if g.Status == domain.GoalStatusActive {
			recent = append(recent, g)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if len(recent) > recentGoalsLimit {
		recent = recent[:recentGoalsLimit]
	}
	return recent
}

func nearCompletion(goals []domain.Goal) []domain.Goal {
	near := make([]domain.Goal, 0, nearCompletionLimit)
	for _, g := range goals {
		if g.Status == domain.GoalStatusActive && g.ProgressPercentage >= nearCompletionPct {
			near = append(near, g)
		}
	}

	sort.SliceStable(near, func(i, j int) bool {
		return near[i].ProgressPercentage > near[j].ProgressPercentage
	})

	if len(near) > nearCompletionLimit {
		near = near[:nearCompletionLimit]
	}
	return near
}
