package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
)

type DashboardHandler struct {
	s service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{s: service}
}

func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	userId := GetUserID(c)

	overview, err := h.s.Overview(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to load dashboard",
		})
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}

func (h *DashboardHandler) Suggestions(c *fiber.Ctx) error {
	userId := GetUserID(c)

	suggestions, err := h.s.Suggestions(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to generate suggestions",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"suggestions": suggestions,
	})
}
