package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/models"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service services.UserService
	logger  *logrus.Logger
}

func NewUserHandler(service services.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List users
// @Description Admin-only, ordered by role, filterable by username substring
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Username substring"
// @Success 200 {object} utils.ListResponse
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)
	search := c.Query("search", "")

	users, total, err := h.service.List(c.Context(), page, limit, search)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewUserResponseList(users)))
}

// Create godoc
// @Summary Create a user
// @Description Admin-only user creation with an explicit role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	user := reqToUser(&req)
	if err := h.service.Create(c.Context(), user); err != nil {
		h.logger.WithError(err).WithField("username", req.Username).Warn("Failed to create user")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
}

// Get godoc
// @Summary Retrieve a user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{username} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(NewUserResponse(user))
}

// Update godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param body body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string
// @Router /users/{username} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	user, err := h.service.Update(c.Context(), c.Params("username"), req.toPatch())
	if err != nil {
		h.logger.WithError(err).WithField("username", c.Params("username")).Warn("Failed to update user")
		return utils.RespondError(c, err)
	}

	return c.JSON(NewUserResponse(user))
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string
// @Router /users/{username} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("username")); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary Retrieve own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(NewUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe godoc
// @Summary Partially update own profile
// @Description Same shape as the admin update, but role is read-only here.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	patch := req.toPatch()
	patch.Role = nil // cannot self-elevate

	user, err := h.service.UpdateByID(c.Context(), middleware.CurrentUser(c).ID, patch)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to update own profile")
		return utils.RespondError(c, err)
	}

	return c.JSON(NewUserResponse(user))
}

func reqToUser(req *CreateUserRequest) *models.User {
	return &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
}
