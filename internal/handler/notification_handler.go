package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	filters := parseNotificationFilters(c)

	result, err := h.notificationService.List(c.Context(), filters, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.UnreadCount(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

func (h *NotificationHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.notificationService.Summary(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("notificationId"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), notifID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	updated, err := h.notificationService.MarkAllAsRead(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"updated_count": updated,
	})
}

func (h *NotificationHandler) Cleanup(c *fiber.Ctx) error {
	daysToKeep := c.QueryInt("days_to_keep", 30)

	deleted, err := h.notificationService.CleanupOld(c.Context(), daysToKeep)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted_count": deleted,
	})
}

func parseNotificationFilters(c *fiber.Ctx) domain.NotificationFilters {
	var filters domain.NotificationFilters

	if v := c.Query("type"); v != "" {
		notifType := domain.NotificationType(v)
		filters.Type = &notifType
	}
	if v := c.Query("severity"); v != "" {
		severity := domain.NotificationSeverity(v)
		filters.Severity = &severity
	}
	if v := c.Query("is_read"); v != "" {
		isRead := v == "true"
		filters.IsRead = &isRead
	}
	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.EndDate = &t
		}
	}

	return filters
}
