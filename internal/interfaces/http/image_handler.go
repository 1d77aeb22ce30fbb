package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

type ImageHandler struct {
	service *application.ImageService
}

func NewImageHandler(service *application.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

func (h *ImageHandler) ListImages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	images, err := h.service.ListImages(userID, c.Query("tag"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(images)
}

func (h *ImageHandler) GetImage(c *fiber.Ctx) error {
	image, err := h.service.GetImage(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(image)
}

func (h *ImageHandler) CreateImage(c *fiber.Ctx) error {
	type Request struct {
		Title       string   `json:"title" validate:"required,max=200"`
		Description *string  `json:"description"`
		URL         string   `json:"url" validate:"required,url"`
		Tags        []string `json:"tags"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := c.Locals("userID").(string)
	image, err := h.service.CreateImage(userID, req.Title, req.Description, req.URL, req.Tags)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

func (h *ImageHandler) UpdateImage(c *fiber.Ctx) error {
	type Request struct {
		Title       string   `json:"title" validate:"required,max=200"`
		Description *string  `json:"description"`
		Tags        []string `json:"tags"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := c.Locals("userID").(string)
	image, err := h.service.UpdateImage(c.Params("id"), userID, req.Title, req.Description, req.Tags)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(image)
}

func (h *ImageHandler) DeleteImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	if err := h.service.DeleteImage(c.Params("id"), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}
