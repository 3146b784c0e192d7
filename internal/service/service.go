package service

import (
	"github.com/minio/minio-go/v7"

	"cagnotte-backend/internal/config"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service/admin"
	"cagnotte-backend/internal/service/analytics"
	"cagnotte-backend/internal/service/auth"
	"cagnotte-backend/internal/service/avatar"
	"cagnotte-backend/internal/service/dashboard"
	"cagnotte-backend/internal/service/email"
	"cagnotte-backend/internal/service/goal"
	"cagnotte-backend/internal/service/notification"
	"cagnotte-backend/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Goal         goal.Service
	Dashboard    dashboard.Service
	Admin        admin.Service
	Notification notification.Service
	Analytics    analytics.Service
	Email        email.Service
	Avatar       avatar.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	notificationService := notification.NewService(repos.Notification)
	analyticsService := analytics.NewService(repos.Analytics)
	avatarService := avatar.NewService(minioClient, cfg)

	authService := auth.NewService(repos.User, repos.Session, emailService, notificationService, analyticsService, cfg)
	userService := user.NewService(repos.User, avatarService, analyticsService)
	goalService := goal.NewService(repos.Goal, notificationService, analyticsService, emailService)
	dashboardService := dashboard.NewService(repos.Goal)
	adminService := admin.NewService(repos.User, repos.Goal, repos.Analytics, repos.Session, notificationService)

	return &Services{
		Auth:         authService,
		User:         userService,
		Goal:         goalService,
		Dashboard:    dashboardService,
		Admin:        adminService,
		Notification: notificationService,
		Analytics:    analyticsService,
		Email:        emailService,
		Avatar:       avatarService,
	}
}
