package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

type GalleryHandler struct {
	service *application.GalleryService
}

func NewGalleryHandler(service *application.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) ListGalleries(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	galleries, err := h.service.ListGalleries(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(galleries)
}

func (h *GalleryHandler) ListPublicGalleries(c *fiber.Ctx) error {
	galleries, err := h.service.ListPublicGalleries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(galleries)
}

func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	gallery, err := h.service.GetGallery(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(gallery)
}

func (h *GalleryHandler) CreateGallery(c *fiber.Ctx) error {
	type Request struct {
		Title       string  `json:"title" validate:"required,max=200"`
		Description *string `json:"description"`
		IsPublic    bool    `json:"is_public"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := c.Locals("userID").(string)
	gallery, err := h.service.CreateGallery(userID, req.Title, req.Description, req.IsPublic)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(gallery)
}

func (h *GalleryHandler) UpdateGallery(c *fiber.Ctx) error {
	type Request struct {
		Title        string  `json:"title" validate:"required,max=200"`
		Description  *string `json:"description"`
		IsPublic     bool    `json:"is_public"`
		CoverImageID *string `json:"cover_image_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := c.Locals("userID").(string)
	gallery, err := h.service.UpdateGallery(c.Params("id"), userID, req.Title, req.Description, req.IsPublic, req.CoverImageID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(gallery)
}

func (h *GalleryHandler) DeleteGallery(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	if err := h.service.DeleteGallery(c.Params("id"), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}
