package handler

import "cagnotte-backend/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Goal         *GoalHandler
	Dashboard    *DashboardHandler
	Admin        *AdminHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Goal:         NewGoalHandler(services.Goal),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Admin:        NewAdminHandler(services.Admin),
		Notification: NewNotificationHandler(services.Notification),
	}
}
