package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdminNotification is the admin-facing event record emitted by the
// notification side-channel. It carries denormalized metadata (username, goal
// name, amounts) so the feed reads without joins, plus reference ids for
// optional enrichment.
type AdminNotification struct {
	ID        uuid.UUID            `json:"id" db:"id"`
	Type      NotificationType     `json:"type" db:"type"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Severity  NotificationSeverity `json:"severity" db:"severity"`
	UserID    *uuid.UUID           `json:"user_id,omitempty" db:"user_id"`
	AdminID   *uuid.UUID           `json:"admin_id,omitempty" db:"admin_id"`
	GoalID    *uuid.UUID           `json:"goal_id,omitempty" db:"goal_id"`
	Metadata  json.RawMessage      `json:"metadata,omitempty" db:"metadata"`
	IsRead    bool                 `json:"is_read" db:"is_read"`
	ReadAt    *time.Time           `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifUserRegistered     NotificationType = "user_registered"
	NotifUserFirstGoal      NotificationType = "user_first_goal"
	NotifUserMilestone      NotificationType = "user_milestone"
	NotifGoalCompleted      NotificationType = "goal_completed"
	NotifGoalHighValue      NotificationType = "goal_high_value"
	NotifAdminAction        NotificationType = "admin_action"
	NotifSuspiciousActivity NotificationType = "suspicious_activity"
	NotifSystemAlert        NotificationType = "system_alert"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifUserRegistered, NotifUserFirstGoal, NotifUserMilestone,
		NotifGoalCompleted, NotifGoalHighValue, NotifAdminAction,
		NotifSuspiciousActivity, NotifSystemAlert:
		return true
	default:
		return false
	}
}

type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeveritySuccess  NotificationSeverity = "success"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

func (s NotificationSeverity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

type NotificationFilters struct {
	Type      *NotificationType     `query:"type"`
	Severity  *NotificationSeverity `query:"severity"`
	IsRead    *bool                 `query:"is_read"`
	StartDate *time.Time            `query:"start_date"`
	EndDate   *time.Time            `query:"end_date"`
}

// NotificationSummary is the aggregate view of the admin feed.
type NotificationSummary struct {
	Total      int64                          `json:"total"`
	Unread     int64                          `json:"unread"`
	BySeverity map[NotificationSeverity]int64 `json:"by_severity"`
}
