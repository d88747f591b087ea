package validate

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func CreateLot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, isAdmin := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		var input model.CreateLotInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if !utils.IsValidPincode(input.Pincode) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PINCODE, errors.New("pincode must be 6 digits"), "pincode")
		}

		c.Locals("createLotInput", input)
		return c.Next()
	}
}

func EditLot(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, isAdmin := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		idStr := c.Params(param)
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid lot id", errors.New("id must be a positive integer"), param)
		}

		var input model.EditLotInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Pincode != nil && !utils.IsValidPincode(*input.Pincode) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PINCODE, errors.New("pincode must be 6 digits"), "pincode")
		}

		c.Locals(param, uint(id))
		c.Locals("editLotInput", input)
		return c.Next()
	}
}
