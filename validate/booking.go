package validate

import (
	"errors"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func BookSpot(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params(param)
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid lot id", errors.New("id must be a positive integer"), param)
		}

		var input model.BookSpotInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals(param, uint(id))
		c.Locals("bookSpotInput", input)
		return c.Next()
	}
}
