package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service/notification"
)

var ErrCannotDeleteSelf = errors.New("admins cannot delete their own account")

// UserGoalStats summarizes a user's goals on the admin user list.
type UserGoalStats struct {
	TotalGoals     int     `json:"total_goals"`
	ActiveGoals    int     `json:"active_goals"`
	CompletedGoals int     `json:"completed_goals"`
	TotalSaved     float64 `json:"total_saved"`
	TotalTarget    float64 `json:"total_target"`
}

type UserWithStats struct {
	domain.User
	Stats UserGoalStats `json:"stats"`
}

type UserDetail struct {
	User         domain.User             `json:"user"`
	Stats        UserGoalStats           `json:"stats"`
	Goals        []domain.Goal           `json:"goals"`
	RecentEvents []domain.AnalyticsEvent `json:"recent_events"`
}

type DeleteUserResult struct {
	DeletedEmail      string `json:"deleted_email"`
	DeletedGoalsCount int64  `json:"deleted_goals_count"`
}

type PlatformUserStats struct {
	Total        int64 `json:"total"`
	Admins       int64 `json:"admins"`
	Regular      int64 `json:"regular"`
	NewLast7Days int64 `json:"new_last_7_days"`
}

type PlatformGoalStats struct {
	Total           int64                          `json:"total"`
	Active          int64                          `json:"active"`
	Completed       int64                          `json:"completed"`
	Paused          int64                          `json:"paused"`
	CreatedLast7Day int64                          `json:"created_last_7_days"`
	ByCategory      map[domain.GoalCategory]int64  `json:"by_category"`
	ByTimeframe     map[domain.GoalTimeframe]int64 `json:"by_timeframe"`
}

type PlatformAmountStats struct {
	TotalSaved  float64 `json:"total_saved"`
	TotalTarget float64 `json:"total_target"`
}

type PlatformStats struct {
	Users     PlatformUserStats   `json:"users"`
	Goals     PlatformGoalStats   `json:"goals"`
	Amounts   PlatformAmountStats `json:"amounts"`
	EventsNew int64               `json:"events_last_7_days"`
}

type Service interface {
	ListUsers(ctx context.Context, filters domain.UserFilters, params domain.PaginationParams) (domain.PaginatedResponse[UserWithStats], error)
	GetUserDetail(ctx context.Context, userID uuid.UUID) (*UserDetail, error)
	UpdateUser(ctx context.Context, admin *domain.User, userID uuid.UUID, input domain.AdminUpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, admin *domain.User, userID uuid.UUID) (*DeleteUserResult, error)
	ListGoals(ctx context.Context, userID *uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) (domain.PaginatedResponse[domain.Goal], error)
	UpdateGoal(ctx context.Context, admin *domain.User, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, admin *domain.User, goalID uuid.UUID) error
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}

type service struct {
	userRepo      repository.UserRepository
	goalRepo      repository.GoalRepository
	analyticsRepo repository.AnalyticsRepository
	sessionRepo   repository.SessionRepository
	notifier      notification.Service
}

func NewService(
	userRepo repository.UserRepository,
	goalRepo repository.GoalRepository,
	analyticsRepo repository.AnalyticsRepository,
	sessionRepo repository.SessionRepository,
	notifier notification.Service,
) Service {
	return &service{
		userRepo:      userRepo,
		goalRepo:      goalRepo,
		analyticsRepo: analyticsRepo,
		sessionRepo:   sessionRepo,
		notifier:      notifier,
	}
}

func (s *service) ListUsers(ctx context.Context, filters domain.UserFilters, params domain.PaginationParams) (domain.PaginatedResponse[UserWithStats], error) {
	users, total, err := s.userRepo.List(ctx, filters, params)
	if err != nil {
		return domain.PaginatedResponse[UserWithStats]{}, err
	}

	enriched := make([]UserWithStats, 0, len(users))
	for _, u := range users {
		goals, err := s.goalRepo.ListAllByUser(ctx, u.ID, domain.GoalFilters{})
		if err != nil {
			return domain.PaginatedResponse[UserWithStats]{}, err
		}
		enriched = append(enriched, UserWithStats{User: u, Stats: computeUserStats(goals)})
	}

	return domain.NewPaginatedResponse(enriched, params.Page, params.PageSize, total), nil
}

func (s *service) GetUserDetail(ctx context.Context, userID uuid.UUID) (*UserDetail, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.ListAllByUser(ctx, userID, domain.GoalFilters{})
	if err != nil {
		return nil, err
	}

	events, err := s.analyticsRepo.ListRecentByUser(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:         *user,
		Stats:        computeUserStats(goals),
		Goals:        goals,
		RecentEvents: events,
	}, nil
}

func (s *service) UpdateUser(ctx context.Context, admin *domain.User, userID uuid.UUID, input domain.AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	previousRole := user.Role

	if input.Username != nil && *input.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameExists
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailExists
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Role != nil && input.Role.IsValid() {
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	action := notification.ActionUserUpdated
	details := map[string]interface{}{}
	if user.Role != previousRole {
		details["previous_role"] = previousRole
		details["new_role"] = user.Role
		if user.Role == domain.RoleAdmin {
			action = notification.ActionUserPromoted
		} else {
			action = notification.ActionUserDemoted
		}
		// A role downgrade invalidates outstanding sessions.
		if user.Role != domain.RoleAdmin {
			_ = s.sessionRepo.RevokeAllForUser(ctx, user.ID)
		}
	}
	_ = s.notifier.LogAdminAction(ctx, admin, action, user, nil, details)

	return user, nil
}

// DeleteUser removes the user and everything they own. The goal count is
// collected before the user row goes away so it can be reported back.
func (s *service) DeleteUser(ctx context.Context, admin *domain.User, userID uuid.UUID) (*DeleteUserResult, error) {
	if admin.ID == userID {
		return nil, ErrCannotDeleteSelf
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	deletedGoals, err := s.goalRepo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.analyticsRepo.DeleteAllByUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.RevokeAllForUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	_ = s.notifier.LogAdminAction(ctx, admin, notification.ActionUserDeleted, user, nil, map[string]interface{}{
		"deleted_goals_count": deletedGoals,
	})

	return &DeleteUserResult{
		DeletedEmail:      user.Email,
		DeletedGoalsCount: deletedGoals,
	}, nil
}

func (s *service) ListGoals(ctx context.Context, userID *uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) (domain.PaginatedResponse[domain.Goal], error) {
	goals, total, err := s.goalRepo.List(ctx, userID, filters, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Goal]{}, err
	}
	return domain.NewPaginatedResponse(goals, params.Page, params.PageSize, total), nil
}

// UpdateGoal is the moderation path: no ownership check, but amounts are
// recomputed the same way the owner's updates are.
func (s *service) UpdateGoal(ctx context.Context, admin *domain.User, goalID uuid.UUID, input domain.UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}

	now := time.Now()
	if err := input.Validate(now); err != nil {
		return nil, err
	}

	amountsChanged := false
	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	if input.CurrentAmount != nil {
		goal.CurrentAmount = *input.CurrentAmount
		amountsChanged = true
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
		amountsChanged = true
	}
	if amountsChanged {
		goal.RecomputeProgress(now)
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	_ = s.notifier.LogAdminAction(ctx, admin, notification.ActionGoalUpdated, nil, goal, nil)

	return goal, nil
}

func (s *service) DeleteGoal(ctx context.Context, admin *domain.User, goalID uuid.UUID) error {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal == nil {
		return domain.ErrGoalNotFound
	}

	if err := s.goalRepo.Delete(ctx, goalID); err != nil {
		return err
	}

	_ = s.notifier.LogAdminAction(ctx, admin, notification.ActionGoalDeleted, nil, goal, map[string]interface{}{
		"goal_name": goal.Name,
	})

	return nil
}

func (s *service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.userRepo.CountCreatedSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	totalGoals, err := s.goalRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	activeGoals, err := s.goalRepo.CountByStatus(ctx, domain.GoalStatusActive)
	if err != nil {
		return nil, err
	}
	completedGoals, err := s.goalRepo.CountByStatus(ctx, domain.GoalStatusCompleted)
	if err != nil {
		return nil, err
	}
	pausedGoals, err := s.goalRepo.CountByStatus(ctx, domain.GoalStatusPaused)
	if err != nil {
		return nil, err
	}
	newGoals, err := s.goalRepo.CountCreatedSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.goalRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byTimeframe, err := s.goalRepo.CountByTimeframe(ctx)
	if err != nil {
		return nil, err
	}
	totalSaved, totalTarget, err := s.goalRepo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	newEvents, err := s.analyticsRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		Users: PlatformUserStats{
			Total:        totalUsers,
			Admins:       admins,
			Regular:      totalUsers - admins,
			NewLast7Days: newUsers,
		},
		Goals: PlatformGoalStats{
			Total:           totalGoals,
			Active:          activeGoals,
			Completed:       completedGoals,
			Paused:          pausedGoals,
			CreatedLast7Day: newGoals,
			ByCategory:      byCategory,
			ByTimeframe:     byTimeframe,
		},
		Amounts: PlatformAmountStats{
			TotalSaved:  totalSaved,
			TotalTarget: totalTarget,
		},
		EventsNew: newEvents,
	}, nil
}

func (s *service) getUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func computeUserStats(goals []domain.Goal) UserGoalStats {
	stats := UserGoalStats{TotalGoals: len(goals)}
	for _, g := range goals {
		switch g.Status {
		case domain.GoalStatusActive:
			stats.ActiveGoals++
		case domain.GoalStatusCompleted:
			stats.CompletedGoals++
		}
		stats.TotalSaved += g.CurrentAmount
		stats.TotalTarget += g.TargetAmount
	}
	return stats
}
