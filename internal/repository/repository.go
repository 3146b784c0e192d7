package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Goal         GoalRepository
	Notification NotificationRepository
	Analytics    AnalyticsRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Goal:         NewGoalRepository(db),
		Notification: NewNotificationRepository(db),
		Analytics:    NewAnalyticsRepository(db),
		Session:      NewSessionRepository(db),
	}
}
