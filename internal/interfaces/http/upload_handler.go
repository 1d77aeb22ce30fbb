package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	services "github.com/vcostin/pic-gallery-sub004/internal/service"
)

type UploadHandler struct {
	service *services.S3Service
}

func NewUploadHandler(service *services.S3Service) *UploadHandler {
	return &UploadHandler{
		service: service,
	}
}

// HandleUploadImage receives a multipart image, pushes it to S3 and
// returns the public URL the client then attaches to an image record.
func (h *UploadHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error().Err(err).Msg("failed to retrieve uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file field",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	url, err := h.service.UploadImage(file, fileHeader)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
