package validate

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterUserInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Password != input.ConfirmPassword {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.PASSWORD_NOT_MATCH, errors.New("password mismatch"), "confirmPassword")
		}

		if !utils.IsValidPincode(input.Pincode) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PINCODE, errors.New("pincode must be 6 digits"), "pincode")
		}

		existing, err := helper.GetUserByUsername(input.Username)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.USERNAME_EXISTS, errors.New("username taken"), "username")
		}

		c.Locals("registerInput", input)
		return c.Next()
	}
}

func EditProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditProfileInput
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

		c.Locals("editProfileInput", input)
		return c.Next()
	}
}
