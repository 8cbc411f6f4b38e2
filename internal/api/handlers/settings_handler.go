package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	userId := GetUserID(c)

	settingsInfo, err := h.s.AutoReplySettings(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to find settings for given user",
		})
	}

	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	userId := GetUserID(c)

	var update transfer.AutoReplyUpdate
	err := c.BodyParser(&update)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	settings, err := h.s.UpdateAutoReply(c.Context(), userId, &update)
	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update settings",
		})
	}

	return c.JSON(settings)
}
