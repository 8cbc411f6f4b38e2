package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type PageHandler struct {
	fb service.FacebookService
	st service.SettingsService
}

func NewPageHandler(fb service.FacebookService, st service.SettingsService) *PageHandler {
	return &PageHandler{fb: fb, st: st}
}

func (h *PageHandler) Connect(c *fiber.Ctx) error {
	return c.Redirect(h.fb.ConnectURL("secureRandomState"))
}

func (h *PageHandler) ConnectCallback(c *fiber.Ctx) error {
	userID := GetUserID(c)
	code := c.Query("code")

	err := h.fb.ConnectCallback(c.Context(), code, userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to connect page",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Page connected successfully",
	})
}

func (h *PageHandler) GetPage(c *fiber.Ctx) error {
	userId := GetUserID(c)

	page, found, err := h.st.PageProfile(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to find page for given user",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No page connected",
		})
	}

	return c.JSON(page)
}

func (h *PageHandler) UpdatePage(c *fiber.Ctx) error {
	userId := GetUserID(c)

	var update transfer.PageProfileUpdate
	err := c.BodyParser(&update)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err = h.st.UpdatePageProfile(c.Context(), userId, &update)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update page",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
