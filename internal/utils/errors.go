package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is the error shape services return to handlers. Code maps
// directly to the HTTP status; Fields carries per-field validation
// detail when present.
type AppError struct {
	Code    int
	Message string
	Fields  map[string][]string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewFieldValidationError(fields map[string][]string) *AppError {
	return &AppError{
		Code:    fiber.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

// RespondError writes err as the structured JSON error body: field
// detail for validation errors, {"detail": ...} otherwise. Unknown
// errors become a 500 without leaking internals.
func RespondError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Fields != nil {
			return c.Status(appErr.Code).JSON(appErr.Fields)
		}
		return c.Status(appErr.Code).JSON(fiber.Map{"detail": appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "internal server error",
	})
}
