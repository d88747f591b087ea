package handler

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetVehicles(c *fiber.Ctx) error {
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	var vehicles []model.Vehicle
	if err := database.DB.Where("user_id = ?", claim.UserId).Find(&vehicles).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, vehicles)
}

func CreateVehicle(c *fiber.Ctx) error {
	db := database.DB
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	input, ok := c.Locals("createVehicleInput").(model.CreateVehicleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	newVehicle := new(model.Vehicle)
	copier.Copy(&newVehicle, &input)
	newVehicle.UserID = claim.UserId

	if err := db.Create(&newVehicle).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newVehicle)
}

func EditVehicle(c *fiber.Ctx) error {
	db := database.DB
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	vehicleId, ok := c.Locals("vehicleId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	input, ok := c.Locals("editVehicleInput").(model.EditVehicleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var vehicle model.Vehicle
	if err := db.Where("id = ? AND user_id = ?", vehicleId, claim.UserId).First(&vehicle).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VEHICLE_NOT_OWNED, err)
	}

	if input.VehicleNumber != nil {
		vehicle.VehicleNumber = *input.VehicleNumber
	}
	if input.VehicleType != nil {
		vehicle.VehicleType = *input.VehicleType
	}

	if err := db.Save(&vehicle).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, vehicle)
}

// DeleteVehicle refuses while the vehicle has an open reservation.
func DeleteVehicle(c *fiber.Ctx) error {
	db := database.DB
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	vehicleId, ok := c.Locals("vehicleId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var vehicle model.Vehicle
	if err := db.Where("id = ? AND user_id = ?", vehicleId, claim.UserId).First(&vehicle).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VEHICLE_NOT_OWNED, err)
	}

	var open int64
	if err := db.Model(&model.Reservation{}).
		Where("vehicle_id = ? AND leaving_timestamp IS NULL", vehicle.ID).
		Count(&open).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if open > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.VEHICLE_IN_USE, errors.New("open reservation exists"), "vehicleId")
	}

	tx := db.Begin()
	// Closed reservation history goes with the vehicle, as the schema's
	// cascade did originally.
	if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&model.Reservation{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Delete(&vehicle).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":   "Vehicle deleted",
		"vehicleId": vehicle.ID,
		"deleted":   true,
	})
}
