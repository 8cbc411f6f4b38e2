package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type PostHandler struct {
	s service.SchedulingService
}

func NewPostHandler(service service.SchedulingService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	content := c.FormValue("content")
	scheduledTime := c.FormValue("scheduled_time")

	var file *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["image"]; len(files) > 0 {
			file = files[0]
		}
	}

	postID, err := h.s.Schedule(c.Context(), userID, &transfer.ScheduleCreation{
		Content:       content,
		ScheduledTime: scheduledTime,
	}, file)

	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to schedule post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post scheduled successfully",
		"post_id": postID,
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userId := GetUserID(c)
	postId := c.QueryInt("id", 0)

	if postId != 0 {
		post, err := h.s.PostInfo(c.Context(), int64(postId), userId)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list posts",
			})
		}

		return c.Status(fiber.StatusOK).JSON(post)

	}

	posts, err := h.s.List(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) CancelPost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CancelRequest
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post_id is required",
		})
	}

	cancelled, err := h.s.Cancel(c.Context(), req.PostID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to cancel post",
		})
	}
	if !cancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Post is not pending",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
