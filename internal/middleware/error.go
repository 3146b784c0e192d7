package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/admin"
	"cagnotte-backend/internal/service/auth"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler translates domain errors into stable HTTP codes. Ownership
// failures answer 403 while missing resources answer 404, so the two cases
// stay distinguishable to clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		errorCode = codeForStatus(code)

	case errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
		errorCode = "NOT_FOUND"

	case errors.Is(err, domain.ErrGoalNotAuthorized):
		code = fiber.StatusForbidden
		message = err.Error()
		errorCode = "FORBIDDEN"

	case errors.Is(err, domain.ErrInvalidAmount):
		code = fiber.StatusBadRequest
		message = err.Error()
		errorCode = "INVALID_AMOUNT"

	case errors.Is(err, domain.ErrValidation):
		code = fiber.StatusBadRequest
		message = err.Error()
		errorCode = "VALIDATION_ERROR"

	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrUsernameExists):
		code = fiber.StatusConflict
		message = err.Error()
		errorCode = "CONFLICT"

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		code = fiber.StatusUnauthorized
		message = err.Error()
		errorCode = "UNAUTHORIZED"

	case errors.Is(err, admin.ErrCannotDeleteSelf):
		code = fiber.StatusForbidden
		message = err.Error()
		errorCode = "FORBIDDEN"
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
