package middleware

import (
	"strings"

	"review-backend/internal/models"
	"review-backend/internal/repository"
	"review-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const localsUserKey = "current_user"

// Authenticate resolves the Authorization header. No header means an
// anonymous request and the chain continues; a present but invalid or
// expired token is rejected outright. On success the backing user row
// is loaded so role changes apply to the very next request.
func Authenticate(secret string, users repository.UserRepository, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid authorization header",
			})
		}

		claims, err := services.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid or expired token",
			})
		}

		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			logger.WithError(err).Error("Failed to load user for token")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "internal server error",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "user no longer exists",
			})
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "authentication required",
			})
		}
		return c.Next()
	}
}

// RequirePermission runs a role predicate before the handler: 401 for
// anonymous callers, 403 for authenticated ones the predicate denies.
func RequirePermission(allowed func(role string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "authentication required",
			})
		}
		if !allowed(user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "you do not have permission to perform this action",
			})
		}
		return c.Next()
	}
}
