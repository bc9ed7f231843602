package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParseID returns the positive numeric id route parameter.
func ParseID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(IDParam), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
