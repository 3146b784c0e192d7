package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is an append-only usage record; events are never updated.
type AnalyticsEvent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	EventType EventType       `json:"event_type" db:"event_type"`
	EventData json.RawMessage `json:"event_data,omitempty" db:"event_data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventUserLogin         EventType = "user_login"
	EventGoalCreated       EventType = "goal_created"
	EventGoalUpdated       EventType = "goal_updated"
	EventGoalDeleted       EventType = "goal_deleted"
	EventGoalCompleted     EventType = "goal_completed"
	EventContributionAdded EventType = "contribution_added"
	EventProfileUpdated    EventType = "profile_updated"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventUserRegistered, EventUserLogin, EventGoalCreated, EventGoalUpdated,
		EventGoalDeleted, EventGoalCompleted, EventContributionAdded, EventProfileUpdated:
		return true
	default:
		return false
	}
}
