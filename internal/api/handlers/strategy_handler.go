package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type StrategyHandler struct {
	s service.StrategyService
}

func NewStrategyHandler(service service.StrategyService) *StrategyHandler {
	return &StrategyHandler{s: service}
}

func (h *StrategyHandler) CreateStrategy(c *fiber.Ctx) error {
	userId := GetUserID(c)

	var sc transfer.StrategyCreation
	err := c.BodyParser(&sc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Create(c.Context(), userId, &sc)
	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create strategy",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"strategy_id": id,
	})
}

func (h *StrategyHandler) ListStrategies(c *fiber.Ctx) error {
	userId := GetUserID(c)

	strategies, err := h.s.List(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list strategies",
		})
	}

	return c.Status(fiber.StatusOK).JSON(strategies)
}

func (h *StrategyHandler) ActivateStrategy(c *fiber.Ctx) error {
	userId := GetUserID(c)
	strategyId := c.QueryInt("id", 0)

	err := h.s.Activate(c.Context(), userId, int64(strategyId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to activate strategy",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *StrategyHandler) RemoveStrategy(c *fiber.Ctx) error {
	userId := GetUserID(c)
	strategyId := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userId, int64(strategyId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to delete strategy",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
