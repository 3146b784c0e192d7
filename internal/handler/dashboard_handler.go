package handler

import (
	"github.com/gofiber/fiber/v2"

	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.dashboardService.Get(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
