package handlers

import (
	"strconv"

	"review-backend/internal/repository"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TitleHandler struct {
	service services.TitleService
	logger  *logrus.Logger
}

func NewTitleHandler(service services.TitleService, logger *logrus.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List titles
// @Description Public, ordered by name, with category/genre/name/year filters. Each entry carries the average review score when reviews exist.
// @Tags titles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Param name query string false "Name substring"
// @Param year query int false "Exact year"
// @Success 200 {object} utils.ListResponse
// @Router /titles [get]
func (h *TitleHandler) List(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)

	year, _ := strconv.Atoi(c.Query("year", "0"))
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category", ""),
		GenreSlug:    c.Query("genre", ""),
		Name:         c.Query("name", ""),
		Year:         year,
	}

	titles, ratings, total, err := h.service.List(c.Context(), page, limit, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list titles")
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewTitleResponseList(titles, ratings)))
}

// Get godoc
// @Summary Retrieve a title
// @Tags titles
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} TitleResponse
// @Failure 404 {object} map[string]string
// @Router /titles/{id} [get]
func (h *TitleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	title, rating, err := h.service.Get(c.Context(), id)
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.JSON(NewTitleResponse(title, rating))
}

// Create godoc
// @Summary Create a title
// @Description Category and genres are referenced by slug.
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TitleRequest true "Title"
// @Success 201 {object} TitleResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /titles [post]
func (h *TitleHandler) Create(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	title, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		h.logger.WithError(err).WithField("name", req.Name).Warn("Failed to create title")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewTitleResponse(title, nil))
}

// Update godoc
// @Summary Partially update a title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Title ID"
// @Param body body UpdateTitleRequest true "Fields to change"
// @Success 200 {object} TitleResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Failure 404 {object} map[string]string
// @Router /titles/{id} [patch]
func (h *TitleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req UpdateTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	title, rating, err := h.service.Update(c.Context(), id, req.toPatch())
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Warn("Failed to update title")
		return utils.RespondError(c, err)
	}

	return c.JSON(NewTitleResponse(title, rating))
}

// Delete godoc
// @Summary Delete a title
// @Description Cascades to the title's reviews and their comments.
// @Tags titles
// @Security BearerAuth
// @Param id path int true "Title ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string
// @Router /titles/{id} [delete]
func (h *TitleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, utils.NewNotFoundError("invalid " + name)
	}
	return uint(id), nil
}
