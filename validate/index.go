package validate

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"parking_manager/utils"
)

// GetById parses a numeric route param and stashes it in Locals under the
// same name.
func GetById(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params(param)
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid id", errors.New("id must be a positive integer"), param)
		}
		c.Locals(param, uint(id))
		return c.Next()
	}
}
