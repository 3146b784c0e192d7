package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/service/goal"
)

type GoalHandler struct {
	goalService goal.Service
}

func NewGoalHandler(goalService goal.Service) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.goalService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)
	filters := parseGoalFilters(c)

	result, err := h.goalService.List(c.Context(), userID, filters, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GoalHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return middleware.BadRequest("Invalid goal ID")
	}

	found, err := h.goalService.GetByID(c.Context(), goalID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
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

	updated, err := h.goalService.Update(c.Context(), goalID, user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return middleware.BadRequest("Invalid goal ID")
	}

	if err := h.goalService.Delete(c.Context(), goalID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *GoalHandler) DeleteAll(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	deleted, err := h.goalService.DeleteAll(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted_count": deleted,
	})
}

func (h *GoalHandler) Contribute(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return middleware.BadRequest("Invalid goal ID")
	}

	var input domain.ContributionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.goalService.AddContribution(c.Context(), goalID, user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *GoalHandler) Statistics(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	filters := parseGoalFilters(c)

	stats, err := h.goalService.Statistics(c.Context(), userID, filters)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func parseGoalFilters(c *fiber.Ctx) domain.GoalFilters {
	var filters domain.GoalFilters

	if v := c.Query("timeframe"); v != "" {
		timeframe := domain.GoalTimeframe(v)
		if timeframe.IsValid() {
			filters.Timeframe = &timeframe
		}
	}
	if v := c.Query("category"); v != "" {
		category := domain.GoalCategory(v)
		if category.IsValid() {
			filters.Category = &category
		}
	}
	if v := c.Query("status"); v != "" {
		status := domain.GoalStatus(v)
		if status.IsValid() {
			filters.Status = &status
		}
	}

	return filters
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
