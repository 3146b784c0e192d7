package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
)

// HighValueThreshold is the target amount, in the goal's currency unit, from
// which a goal is reported to administrators as high value.
const HighValueThreshold = 10000

type MilestoneKind string

const (
	MilestoneFiveGoals       MilestoneKind = "5_goals"
	MilestoneTenGoals        MilestoneKind = "10_goals"
	MilestoneFirstCompletion MilestoneKind = "first_completion"
	MilestoneFiveCompletions MilestoneKind = "5_completions"
)

type AdminAction string

const (
	ActionUserUpdated  AdminAction = "user_updated"
	ActionUserPromoted AdminAction = "user_promoted"
	ActionUserDemoted  AdminAction = "user_demoted"
	ActionUserDeleted  AdminAction = "user_deleted"
	ActionGoalUpdated  AdminAction = "goal_updated"
	ActionGoalDeleted  AdminAction = "goal_deleted"
)

// Service is the admin notification side-channel. Emitters are best-effort:
// a sink failure is logged and must never fail the triggering operation, so
// callers discard the returned error once the business write has succeeded.
type Service interface {
	List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotification], error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	CleanupOld(ctx context.Context, daysToKeep int) (int64, error)
	Summary(ctx context.Context) (*domain.NotificationSummary, error)

	NotifyNewUser(ctx context.Context, user *domain.User) error
	NotifyFirstGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error
	NotifyGoalCompleted(ctx context.Context, user *domain.User, goal *domain.Goal) error
	NotifyHighValueGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error
	NotifyUserMilestone(ctx context.Context, user *domain.User, kind MilestoneKind) error
	LogAdminAction(ctx context.Context, admin *domain.User, action AdminAction, targetUser *domain.User, targetGoal *domain.Goal, details map[string]interface{}) error
	NotifySuspiciousActivity(ctx context.Context, kind string, userID *uuid.UUID, details map[string]interface{}) error
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) List(ctx context.Context, filters domain.NotificationFilters, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotification], error) {
	notifications, total, err := s.notifRepo.List(ctx, filters, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AdminNotification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context) (int64, error) {
	return s.notifRepo.CountUnread(ctx)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx)
}

// CleanupOld deletes already-read notifications older than the retention
// window. It is idempotent and safe to run concurrently with itself.
func (s *service) CleanupOld(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep <= 0 {
		daysToKeep = 30
	}
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	return s.notifRepo.DeleteOlderThan(ctx, cutoff, true)
}

func (s *service) Summary(ctx context.Context) (*domain.NotificationSummary, error) {
	bySeverity, err := s.notifRepo.CountBySeverity(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range bySeverity {
		total += count
	}

	return &domain.NotificationSummary{
		Total:      total,
		Unread:     unread,
		BySeverity: bySeverity,
	}, nil
}

func (s *service) NotifyNewUser(ctx context.Context, user *domain.User) error {
	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifUserRegistered,
		Title:    "Nouvel utilisateur inscrit",
		Message:  fmt.Sprintf("%s (%s) vient de s'inscrire", user.Username, user.Email),
		Severity: domain.SeverityInfo,
		UserID:   &user.ID,
		Metadata: marshalMetadata(map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
			"currency": user.CurrencyCode,
		}),
	})
}

func (s *service) NotifyFirstGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifUserFirstGoal,
		Title:    "Premier objectif créé",
		Message:  fmt.Sprintf("%s a créé son premier objectif: %q", user.Username, goal.Name),
		Severity: domain.SeveritySuccess,
		UserID:   &user.ID,
		GoalID:   &goal.ID,
		Metadata: marshalMetadata(map[string]interface{}{
			"username":      user.Username,
			"goal_name":     goal.Name,
			"target_amount": goal.TargetAmount,
			"currency":      goal.CurrencySymbol,
		}),
	})
}

func (s *service) NotifyGoalCompleted(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifGoalCompleted,
		Title:    "Objectif atteint",
		Message:  fmt.Sprintf("%s a atteint son objectif %q", user.Username, goal.Name),
		Severity: domain.SeveritySuccess,
		UserID:   &user.ID,
		GoalID:   &goal.ID,
		Metadata: marshalMetadata(map[string]interface{}{
			"username":  user.Username,
			"goal_name": goal.Name,
			"amount":    goal.TargetAmount,
			"currency":  goal.CurrencySymbol,
			"category":  goal.Category,
			"timeframe": goal.Timeframe,
		}),
	})
}

// NotifyHighValueGoal emits only when the target reaches the threshold, so
// callers invoke it unconditionally after goal creation or amount updates.
func (s *service) NotifyHighValueGoal(ctx context.Context, user *domain.User, goal *domain.Goal) error {
	if goal.TargetAmount < HighValueThreshold {
		return nil
	}

	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifGoalHighValue,
		Title:    "Objectif de grande valeur",
		Message:  fmt.Sprintf("%s vise %s%.2f pour %q", user.Username, goal.CurrencySymbol, goal.TargetAmount, goal.Name),
		Severity: domain.SeverityInfo,
		UserID:   &user.ID,
		GoalID:   &goal.ID,
		Metadata: marshalMetadata(map[string]interface{}{
			"username":      user.Username,
			"goal_name":     goal.Name,
			"target_amount": goal.TargetAmount,
			"currency":      goal.CurrencySymbol,
		}),
	})
}

func (s *service) NotifyUserMilestone(ctx context.Context, user *domain.User, kind MilestoneKind) error {
	metadata := map[string]interface{}{"username": user.Username, "milestone": string(kind)}

	var message string
	switch kind {
	case MilestoneFiveGoals:
		message = fmt.Sprintf("%s a créé 5 objectifs", user.Username)
		metadata["goal_count"] = 5
	case MilestoneTenGoals:
		message = fmt.Sprintf("%s a créé 10 objectifs", user.Username)
		metadata["goal_count"] = 10
	case MilestoneFirstCompletion:
		message = fmt.Sprintf("%s a complété son premier objectif", user.Username)
	case MilestoneFiveCompletions:
		message = fmt.Sprintf("%s a complété 5 objectifs", user.Username)
		metadata["completed_count"] = 5
	default:
		message = fmt.Sprintf("%s a atteint un milestone", user.Username)
	}

	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifUserMilestone,
		Title:    "Milestone atteint",
		Message:  message,
		Severity: domain.SeveritySuccess,
		UserID:   &user.ID,
		Metadata: marshalMetadata(metadata),
	})
}

func (s *service) LogAdminAction(ctx context.Context, admin *domain.User, action AdminAction, targetUser *domain.User, targetGoal *domain.Goal, details map[string]interface{}) error {
	severity := domain.SeverityInfo
	var message string

	switch action {
	case ActionUserUpdated:
		message = fmt.Sprintf("%s a modifié l'utilisateur %s", admin.Username, targetUser.Username)
	case ActionUserPromoted:
		message = fmt.Sprintf("%s a promu %s en admin", admin.Username, targetUser.Username)
		severity = domain.SeverityWarning
	case ActionUserDemoted:
		message = fmt.Sprintf("%s a rétrogradé %s en user", admin.Username, targetUser.Username)
		severity = domain.SeverityWarning
	case ActionUserDeleted:
		message = fmt.Sprintf("%s a supprimé l'utilisateur %s", admin.Username, targetUser.Email)
		severity = domain.SeverityCritical
	case ActionGoalUpdated:
		message = fmt.Sprintf("%s a modifié l'objectif %q", admin.Username, targetGoal.Name)
	case ActionGoalDeleted:
		message = fmt.Sprintf("%s a supprimé l'objectif %q", admin.Username, targetGoal.Name)
		severity = domain.SeverityWarning
	default:
		message = fmt.Sprintf("%s a effectué: %s", admin.Username, action)
	}

	metadata := map[string]interface{}{
		"admin_username": admin.Username,
		"action":         string(action),
	}
	for k, v := range details {
		metadata[k] = v
	}

	notif := &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifAdminAction,
		Title:    "Action admin",
		Message:  message,
		Severity: severity,
		AdminID:  &admin.ID,
		Metadata: marshalMetadata(metadata),
	}
	if targetUser != nil {
		notif.UserID = &targetUser.ID
	}
	if targetGoal != nil {
		notif.GoalID = &targetGoal.ID
		notif.UserID = &targetGoal.UserID
	}

	return s.emit(ctx, notif)
}

// NotifySuspiciousActivity is the emission hook for anomaly detection; the
// detection itself lives with the callers.
func (s *service) NotifySuspiciousActivity(ctx context.Context, kind string, userID *uuid.UUID, details map[string]interface{}) error {
	metadata := map[string]interface{}{"kind": kind}
	for k, v := range details {
		metadata[k] = v
	}

	return s.emit(ctx, &domain.AdminNotification{
		ID:       uuid.New(),
		Type:     domain.NotifSuspiciousActivity,
		Title:    "Activité suspecte",
		Message:  fmt.Sprintf("Activité suspecte détectée: %s", kind),
		Severity: domain.SeverityCritical,
		UserID:   userID,
		Metadata: marshalMetadata(metadata),
	})
}

func (s *service) emit(ctx context.Context, notif *domain.AdminNotification) error {
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create admin notification %s: %v", notif.Type, err)
		return err
	}
	return nil
}

func marshalMetadata(metadata map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(metadata)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(data)
}
