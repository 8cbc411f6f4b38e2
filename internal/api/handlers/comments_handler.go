package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type CommentsHandler struct {
	s service.CommentService
}

func NewCommentsHandler(service service.CommentService) *CommentsHandler {
	return &CommentsHandler{s: service}
}

func (h *CommentsHandler) MonitorComments(c *fiber.Ctx) error {
	userId := GetUserID(c)

	comments, err := h.s.Monitor(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to monitor comments",
		})
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	userId := GetUserID(c)
	postId := c.Query("post_id")

	if postId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post_id is required",
		})
	}

	comments, err := h.s.ListForPost(c.Context(), userId, postId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list comments",
		})
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *CommentsHandler) ReplyToComment(c *fiber.Ctx) error {
	userId := GetUserID(c)

	var req transfer.ReplyRequest
	err := c.BodyParser(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Reply(c.Context(), userId, req.CommentID, req.Message)
	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to send reply",
		})
	}
	if !result.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": result.ErrorMessage,
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentsHandler) QuickReplies(c *fiber.Ctx) error {
	userId := GetUserID(c)

	var req transfer.QuickReplyRequest
	err := c.BodyParser(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	replies, err := h.s.QuickReplies(c.Context(), userId, req.Comment)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"replies": replies,
	})
}
