package handlers

import (
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	minioService *services.MinIOService
	logger       *logrus.Logger
}

func NewUploadHandler(minioService *services.MinIOService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		minioService: minioService,
		logger:       logger,
	}
}

// PresignCover godoc
// @Summary Get a presigned URL for a cover upload
// @Description Returns a short-lived PUT URL for direct upload plus the public URL to set as the title's cover_url.
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Filename"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /titles/upload/presign [get]
func (h *UploadHandler) PresignCover(c *fiber.Ctx) error {
	if h.minioService == nil {
		return utils.RespondError(c, fiber.NewError(fiber.StatusServiceUnavailable, "cover uploads are not configured"))
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.RespondError(c, utils.NewValidationError("filename is required"))
	}

	presignedURL, publicURL, err := h.minioService.PresignCoverUpload(filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
