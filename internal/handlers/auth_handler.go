package handlers

import (
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// SignUp godoc
// @Summary Sign up by email
// @Description Register a username/email pair and receive a confirmation code by email. Re-posting the same pair issues a fresh code.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up request"
// @Success 200 {object} SignUpRequest "Registered pair"
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	if err := h.service.SignUp(c.Context(), req.Username, req.Email); err != nil {
		h.logger.WithError(err).WithField("username", req.Username).Warn("Sign-up failed")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

// Token godoc
// @Summary Exchange a confirmation code for an access token
// @Description Returns a bearer token for the Authorization header. Each code works once.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Token request"
// @Success 200 {object} TokenResponse "Access token"
// @Failure 400 {object} map[string]string "Invalid confirmation code"
// @Failure 404 {object} map[string]string "Unknown username"
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	token, err := h.service.IssueToken(c.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		h.logger.WithError(err).WithField("username", req.Username).Warn("Token exchange failed")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		Username: req.Username,
		Token:    token,
	})
}
