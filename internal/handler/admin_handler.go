package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/service/admin"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filters domain.UserFilters
	filters.Search = c.Query("search")
	if v := c.Query("role"); v != "" {
		role := domain.UserRole(v)
		if role.IsValid() {
			filters.Role = &role
		}
	}

	result, err := h.adminService.ListUsers(c.Context(), filters, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	detail, err := h.adminService.GetUserDetail(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	adminUser := middleware.GetCurrentUser(c)
	if adminUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.AdminUpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.adminService.UpdateUser(c.Context(), adminUser, userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminUser := middleware.GetCurrentUser(c)
	if adminUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	result, err := h.adminService.DeleteUser(c.Context(), adminUser, userID)
	if err != nil {
		if errors.Is(err, admin.ErrCannotDeleteSelf) {
			return middleware.Forbidden("You cannot delete your own account")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) ListGoals(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	filters := parseGoalFilters(c)

	var userID *uuid.UUID
	if v := c.Query("user_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			return middleware.BadRequest("Invalid user ID filter")
		}
		userID = &parsed
	}

	result, err := h.adminService.ListGoals(c.Context(), userID, filters, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) UpdateGoal(c *fiber.Ctx) error {
	adminUser := middleware.GetCurrentUser(c)
	if adminUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return middleware.BadRequest("Invalid goal ID")
	}

	var input domain.UpdateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.adminService.UpdateGoal(c.Context(), adminUser, goalID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AdminHandler) DeleteGoal(c *fiber.Ctx) error {
	adminUser := middleware.GetCurrentUser(c)
	if adminUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return middleware.BadRequest("Invalid goal ID")
	}

	if err := h.adminService.DeleteGoal(c.Context(), adminUser, goalID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *AdminHandler) PlatformStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetPlatformStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
