package validate

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func CreateVehicle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateVehicleInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		input.VehicleNumber = utils.NormalizeVehicleNumber(input.VehicleNumber)
		if input.VehicleNumber == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Vehicle number is required", errors.New("empty vehicle number"), "vehicleNumber")
		}

		var count int64
		if err := database.DB.Model(&model.Vehicle{}).
			Where("vehicle_number = ?", input.VehicleNumber).
			Count(&count).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if count > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.VEHICLE_NUMBER_EXISTS, errors.New("duplicate vehicle number"), "vehicleNumber")
		}

		c.Locals("createVehicleInput", input)
		return c.Next()
	}
}

func EditVehicle(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params(param)
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid vehicle id", errors.New("id must be a positive integer"), param)
		}

		var input model.EditVehicleInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not parse request body", err)
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.VehicleNumber != nil {
			normalized := utils.NormalizeVehicleNumber(*input.VehicleNumber)
			if normalized == "" {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Vehicle number is required", errors.New("empty vehicle number"), "vehicleNumber")
			}
			var count int64
			if err := database.DB.Model(&model.Vehicle{}).
				Where("vehicle_number = ? AND id != ?", normalized, id).
				Count(&count).Error; err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			if count > 0 {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.VEHICLE_NUMBER_EXISTS, errors.New("duplicate vehicle number"), "vehicleNumber")
			}
			input.VehicleNumber = &normalized
		}

		c.Locals(param, uint(id))
		c.Locals("editVehicleInput", input)
		return c.Next()
	}
}
