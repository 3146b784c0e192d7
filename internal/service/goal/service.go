package goal

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service/analytics"
	"cagnotte-backend/internal/service/email"
	"cagnotte-backend/internal/service/notification"
)

const defaultIcon = "piggy-bank"

// ListResult bundles a page of goals with statistics over the same filter,
// so list screens render both from one response.
type ListResult struct {
	Goals      domain.PaginatedResponse[domain.Goal] `json:"goals"`
	Statistics domain.GoalStatistics                 `json:"statistics"`
}

type Service interface {
	Create(ctx context.Context, user *domain.User, input domain.CreateGoalInput) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) (*ListResult, error)
	GetByID(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error)
	Update(ctx context.Context, goalID uuid.UUID, user *domain.User, input domain.UpdateGoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, goalID, userID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	AddContribution(ctx context.Context, goalID uuid.UUID, user *domain.User, input domain.ContributionInput) (*domain.Goal, error)
	Statistics(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) (domain.GoalStatistics, error)
}

type service struct {
	goalRepo     repository.GoalRepository
	notifier     notification.Service
	analytics    analytics.Service
	emailService email.Service
}

func NewService(goalRepo repository.GoalRepository, notifier notification.Service, analyticsService analytics.Service, emailService email.Service) Service {
	return &service{
		goalRepo:     goalRepo,
		notifier:     notifier,
		analytics:    analyticsService,
		emailService: emailService,
	}
}

func (s *service) Create(ctx context.Context, user *domain.User, input domain.CreateGoalInput) (*domain.Goal, error) {
	now := time.Now()
	if err := input.Validate(now); err != nil {
		return nil, err
	}

	currency, ok := domain.CurrencyByCode(input.CurrencyCode)
	if !ok {
		if currency, ok = domain.CurrencyByCode(user.CurrencyCode); !ok {
			currency = domain.DefaultCurrency
		}
	}

	icon := input.Icon
	if icon == "" {
		icon = defaultIcon
	}

	goal := &domain.Goal{
		ID:                uuid.New(),
		UserID:            user.ID,
		Name:              input.Name,
		Description:       input.Description,
		Category:          input.Category,
		Timeframe:         input.Timeframe,
		Icon:              icon,
		CurrentAmount:     0,
		TargetAmount:      input.TargetAmount,
		CurrencyCode:      currency.Code,
		CurrencySymbol:    currency.Symbol,
		ProgressUpdatedAt: now,
		StartedAt:         now,
		TargetDate:        input.TargetDate,
		Status:            domain.GoalStatusActive,
		Contributions:     domain.ContributionList{},
		Milestones:        domain.MilestoneList{},
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventGoalCreated, map[string]interface{}{
		"goal_id":       goal.ID.String(),
		"category":      goal.Category,
		"timeframe":     goal.Timeframe,
		"target_amount": goal.TargetAmount,
	})
	_ = s.notifier.NotifyHighValueGoal(ctx, user, goal)
	s.emitCreationMilestones(ctx, user, goal)

	return goal, nil
}

// emitCreationMilestones reports first-goal and goal-count milestones based
// on the total created by the user, including the goal just written.
func (s *service) emitCreationMilestones(ctx context.Context, user *domain.User, goal *domain.Goal) {
	count, err := s.goalRepo.CountByUser(ctx, user.ID, domain.GoalFilters{})
	if err != nil {
		log.Printf("Failed to count goals for user %s: %v", user.ID, err)
		return
	}

	switch count {
	case 1:
		_ = s.notifier.NotifyFirstGoal(ctx, user, goal)
	case 5:
		_ = s.notifier.NotifyUserMilestone(ctx, user, notification.MilestoneFiveGoals)
	case 10:
		_ = s.notifier.NotifyUserMilestone(ctx, user, notification.MilestoneTenGoals)
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters, params domain.PaginationParams) (*ListResult, error) {
	goals, total, err := s.goalRepo.ListByUser(ctx, userID, filters, params)
	if err != nil {
		return nil, err
	}

	all, err := s.goalRepo.ListAllByUser(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Goals:      domain.NewPaginatedResponse(goals, params.Page, params.PageSize, total),
		Statistics: domain.ComputeStatistics(all),
	}, nil
}

func (s *service) GetByID(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error) {
	return s.getOwned(ctx, goalID, userID)
}

func (s *service) Update(ctx context.Context, goalID uuid.UUID, user *domain.User, input domain.UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.getOwned(ctx, goalID, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := input.Validate(now); err != nil {
		return nil, err
	}

	prevStatus := goal.Status
	amountsChanged := applyUpdate(goal, input)

	if amountsChanged {
		goal.RecomputeProgress(now)
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventGoalUpdated, map[string]interface{}{
		"goal_id": goal.ID.String(),
	})
	if input.TargetAmount != nil {
		_ = s.notifier.NotifyHighValueGoal(ctx, user, goal)
	}
	s.emitCompletionEvents(ctx, user, goal, prevStatus)

	return goal, nil
}

// applyUpdate copies the provided fields onto the goal and reports whether
// an amount changed, which is what decides a progress recompute.
func applyUpdate(goal *domain.Goal, input domain.UpdateGoalInput) bool {
	amountsChanged := false

	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Timeframe != nil {
		goal.Timeframe = *input.Timeframe
	}
	if input.Icon != nil {
		goal.Icon = *input.Icon
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	if input.CurrencyCode != nil {
		if currency, ok := domain.CurrencyByCode(*input.CurrencyCode); ok {
			goal.CurrencyCode = currency.Code
			goal.CurrencySymbol = currency.Symbol
		}
	}
	if input.CurrentAmount != nil {
		goal.CurrentAmount = *input.CurrentAmount
		amountsChanged = true
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
		amountsChanged = true
	}

	return amountsChanged
}

// emitCompletionEvents compares the status before the write with the status
// after it, so completion fires exactly once per active to completed
// transition, never on re-saves of an already completed goal.
func (s *service) emitCompletionEvents(ctx context.Context, user *domain.User, goal *domain.Goal, prevStatus domain.GoalStatus) {
	if prevStatus == domain.GoalStatusCompleted || goal.Status != domain.GoalStatusCompleted {
		return
	}

	_ = s.notifier.NotifyGoalCompleted(ctx, user, goal)
	_ = s.analytics.Track(ctx, user.ID, domain.EventGoalCompleted, map[string]interface{}{
		"goal_id":       goal.ID.String(),
		"target_amount": goal.TargetAmount,
	})

	go func(toEmail, username, goalName string) {
		if err := s.emailService.SendGoalCompletedEmail(context.Background(), toEmail, username, goalName); err != nil {
			log.Printf("Failed to send goal completed email to %s: %v", toEmail, err)
		}
	}(user.Email, user.Username, goal.Name)

	completedStatus := domain.GoalStatusCompleted
	completedCount, err := s.goalRepo.CountByUser(ctx, user.ID, domain.GoalFilters{Status: &completedStatus})
	if err != nil {
		log.Printf("Failed to count completed goals for user %s: %v", user.ID, err)
		return
	}

	switch completedCount {
	case 1:
		_ = s.notifier.NotifyUserMilestone(ctx, user, notification.MilestoneFirstCompletion)
	case 5:
		_ = s.notifier.NotifyUserMilestone(ctx, user, notification.MilestoneFiveCompletions)
	}
}

func (s *service) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := s.getOwned(ctx, goalID, userID)
	if err != nil {
		return err
	}

	if err := s.goalRepo.Delete(ctx, goal.ID); err != nil {
		return err
	}

	_ = s.analytics.Track(ctx, userID, domain.EventGoalDeleted, map[string]interface{}{
		"goal_id":   goal.ID.String(),
		"goal_name": goal.Name,
	})

	return nil
}

func (s *service) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := s.goalRepo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		_ = s.analytics.Track(ctx, userID, domain.EventGoalDeleted, map[string]interface{}{
			"deleted_count": deleted,
		})
	}

	return deleted, nil
}

func (s *service) AddContribution(ctx context.Context, goalID uuid.UUID, user *domain.User, input domain.ContributionInput) (*domain.Goal, error) {
	goal, err := s.getOwned(ctx, goalID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	prevStatus := goal.Status
	now := time.Now()
	if err := goal.AddContribution(input.Amount, input.Note, now); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventContributionAdded, map[string]interface{}{
		"goal_id": goal.ID.String(),
		"amount":  input.Amount,
	})
	s.emitCompletionEvents(ctx, user, goal, prevStatus)

	return goal, nil
}

func (s *service) Statistics(ctx context.Context, userID uuid.UUID, filters domain.GoalFilters) (domain.GoalStatistics, error) {
	goals, err := s.goalRepo.ListAllByUser(ctx, userID, filters)
	if err != nil {
		return domain.GoalStatistics{}, err
	}
	return domain.ComputeStatistics(goals), nil
}

// getOwned distinguishes a missing goal from someone else's goal, so the
// surface can answer 404 for the former and 403 for the latter.
func (s *service) getOwned(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotAuthorized
	}
	return goal, nil
}
