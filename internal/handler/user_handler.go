package handler

import (
	"github.com/gofiber/fiber/v2"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/middleware"
	"cagnotte-backend/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(currentUser)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdatePreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdatePreferences(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Missing avatar file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read avatar file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	updated, err := h.userService.UploadAvatar(c.Context(), userID, fileHeader.Size, contentType, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) DeleteAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.userService.DeleteAvatar(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) Currencies(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"currencies": domain.SupportedCurrencies,
	})
}
