package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUserID reads the user id set by the auth middleware. Returns 0 when the
// locals value is missing or malformed.
func GetUserID(c *fiber.Ctx) int64 {
	raw, _ := c.Locals("user_id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
