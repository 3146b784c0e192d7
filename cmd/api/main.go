package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"cagnotte-backend/internal/config"
	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/handler"
	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service"
	"cagnotte-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (avatar upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	go sweepExpiredSessions(repos.Session)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    10 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth, redisClient)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// sweepExpiredSessions clears out refresh sessions past their expiry so the
// sessions table does not grow without bound.
func sweepExpiredSessions(sessions repository.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := sessions.DeleteExpired(context.Background()); err != nil {
			log.Printf("Failed to delete expired sessions: %v", err)
		}
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, redisClient *redis.Client) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1", middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		Max:    300,
		Window: time.Minute,
		Prefix: "ratelimit:api",
	}))

	// Credential endpoints get a much tighter window than the rest of
	// the API.
	authGroup := v1.Group("/auth", middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		Max:    10,
		Window: time.Minute,
		Prefix: "ratelimit:auth",
	}))
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	v1.Get("/currencies", h.User.Currencies)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.Me)
	users.Put("/me", h.User.UpdateProfile)
	users.Put("/me/preferences", h.User.UpdatePreferences)
	users.Post("/me/avatar", h.User.UploadAvatar)
	users.Delete("/me/avatar", h.User.DeleteAvatar)

	goals := protected.Group("/goals")
	goals.Post("/", h.Goal.Create)
	goals.Get("/", h.Goal.List)
	goals.Get("/statistics", h.Goal.Statistics)
	goals.Delete("/", h.Goal.DeleteAll)
	goals.Get("/:goalId", h.Goal.Get)
	goals.Put("/:goalId", h.Goal.Update)
	goals.Delete("/:goalId", h.Goal.Delete)
	goals.Post("/:goalId/contribute", h.Goal.Contribute)

	protected.Get("/dashboard", h.Dashboard.Get)

	adminGroup := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	adminUsers := adminGroup.Group("/users")
	adminUsers.Get("/", h.Admin.ListUsers)
	adminUsers.Get("/:userId", h.Admin.GetUser)
	adminUsers.Put("/:userId", h.Admin.UpdateUser)
	adminUsers.Delete("/:userId", h.Admin.DeleteUser)

	adminGoals := adminGroup.Group("/goals")
	adminGoals.Get("/", h.Admin.ListGoals)
	adminGoals.Put("/:goalId", h.Admin.UpdateGoal)
	adminGoals.Delete("/:goalId", h.Admin.DeleteGoal)

	adminGroup.Get("/stats", h.Admin.PlatformStats)

	notifications := adminGroup.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Get("/summary", h.Notification.Summary)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/cleanup", h.Notification.Cleanup)
}
