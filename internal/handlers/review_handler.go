package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewReviewHandler(service services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List reviews of a title
// @Description Public, ordered by publication time.
// @Tags reviews
// @Produce json
// @Param titleID path int true "Title ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.ListResponse
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	titleID, err := parseID(c, "titleID")
	if err != nil {
		return utils.RespondError(c, err)
	}
	page, limit := utils.ParsePagination(c)

	reviews, total, err := h.service.List(c.Context(), titleID, page, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewReviewResponseList(reviews)))
}

// Get godoc
// @Summary Retrieve a review
// @Tags reviews
// @Produce json
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	titleID, err := parseID(c, "titleID")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	review, err := h.service.Get(c.Context(), titleID, id)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(NewReviewResponse(review))
}

// Create godoc
// @Summary Review a title
// @Description One review per user per title; a second attempt fails validation.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param body body CreateReviewRequest true "Review"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	titleID, err := parseID(c, "titleID")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	review, err := h.service.Create(c.Context(), titleID, middleware.CurrentUser(c), req.Text, req.Score)
	if err != nil {
		h.logger.WithError(err).WithField("title_id", titleID).Warn("Failed to create review")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewReviewResponse(review))
}

// Update godoc
// @Summary Partially update a review
// @Description Allowed for the author, moderators and admins.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Param body body UpdateReviewRequest true "Fields to change"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{id} [patch]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	titleID, err := parseID(c, "titleID")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	review, err := h.service.Update(c.Context(), titleID, id, middleware.CurrentUser(c), req.toPatch())
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(NewReviewResponse(review))
}

// Delete godoc
// @Summary Delete a review
// @Description Allowed for the author, moderators and admins. Cascades to comments.
// @Tags reviews
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	titleID, err := parseID(c, "titleID")
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	if err := h.service.Delete(c.Context(), titleID, id, middleware.CurrentUser(c)); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
