package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	service services.CommentService
	logger  *logrus.Logger
}

func NewCommentHandler(service services.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CommentHandler) path(c *fiber.Ctx) (titleID, reviewID uint, err error) {
	titleID, err = parseID(c, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = parseID(c, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// List godoc
// @Summary List comments on a review
// @Description Public, ordered by publication time. 404 when the review does not belong to the title.
// @Tags comments
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.ListResponse
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{reviewID}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	titleID, reviewID, err := h.path(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	page, limit := utils.ParsePagination(c)

	comments, total, err := h.service.List(c.Context(), titleID, reviewID, page, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewCommentResponseList(comments)))
}

// Get godoc
// @Summary Retrieve a comment
// @Tags comments
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [get]
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	titleID, reviewID, err := h.path(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	comment, err := h.service.Get(c.Context(), titleID, reviewID, id)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(NewCommentResponse(comment))
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{reviewID}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	titleID, reviewID, err := h.path(c)
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	comment, err := h.service.Create(c.Context(), titleID, reviewID, middleware.CurrentUser(c), req.Text)
	if err != nil {
		h.logger.WithError(err).WithField("review_id", reviewID).Warn("Failed to create comment")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewCommentResponse(comment))
}

// Update godoc
// @Summary Update a comment
// @Description Allowed for the author, moderators and admins.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Param body body CommentRequest true "New text"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [patch]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	titleID, reviewID, err := h.path(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	comment, err := h.service.Update(c.Context(), titleID, reviewID, id, middleware.CurrentUser(c), req.Text)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(NewCommentResponse(comment))
}

// Delete godoc
// @Summary Delete a comment
// @Description Allowed for the author, moderators and admins.
// @Tags comments
// @Security BearerAuth
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	titleID, reviewID, err := h.path(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	if err := h.service.Delete(c.Context(), titleID, reviewID, id, middleware.CurrentUser(c)); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
