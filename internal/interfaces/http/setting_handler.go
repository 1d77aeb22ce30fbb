package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

type SettingHandler struct {
	service *application.SettingService
}

func NewSettingHandler(service *application.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

func (h *SettingHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.service.GetSetting(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(setting)
}

func (h *SettingHandler) GetAllSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetAllSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(settings)
}

func (h *SettingHandler) UpdateSetting(c *fiber.Ctx) error {
	type Request struct {
		Value string `json:"value"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	key := c.Params("key")
	if err := h.service.UpdateSetting(key, req.Value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Setting updated successfully",
		"key":     key,
	})
}
