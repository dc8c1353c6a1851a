package handlers

import (
	"review-backend/internal/models"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewCatalogHandler(service services.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description Public, ordered by name, filterable by name/slug substring
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name or slug substring"
// @Success 200 {object} utils.ListResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)
	search := c.Query("search", "")

	categories, total, err := h.service.ListCategories(c.Context(), page, limit, search)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewCategoryResponseList(categories)))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.service.CreateCategory(c.Context(), category); err != nil {
		h.logger.WithError(err).WithField("slug", req.Slug).Warn("Failed to create category")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete a category by slug
// @Description Titles referencing the category keep existing with a null category.
// @Tags catalog
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string
// @Router /categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Context(), c.Params("slug")); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGenres godoc
// @Summary List genres
// @Description Public, ordered by name, filterable by name/slug substring
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name or slug substring"
// @Success 200 {object} utils.ListResponse
// @Router /genres [get]
func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)
	search := c.Query("search", "")

	genres, total, err := h.service.ListGenres(c.Context(), page, limit, search)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list genres")
		return utils.RespondError(c, err)
	}

	return c.JSON(utils.BuildListResponse(c, page, limit, total, NewGenreResponseList(genres)))
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenreRequest true "Genre"
// @Success 201 {object} GenreResponse
// @Failure 400 {object} map[string][]string "Validation errors"
// @Router /genres [post]
func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondError(c, utils.NewValidationError("invalid request body"))
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.RespondError(c, err)
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.service.CreateGenre(c.Context(), genre); err != nil {
		h.logger.WithError(err).WithField("slug", req.Slug).Warn("Failed to create genre")
		return utils.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewGenreResponse(genre))
}

// DeleteGenre godoc
// @Summary Delete a genre by slug
// @Tags catalog
// @Security BearerAuth
// @Param slug path string true "Genre slug"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string
// @Router /genres/{slug} [delete]
func (h *CatalogHandler) DeleteGenre(c *fiber.Ctx) error {
	if err := h.service.DeleteGenre(c.Context(), c.Params("slug")); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
