package handler

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetSpotsByLot(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	lotIdStr := c.Params("lotId")
	lotId, err := strconv.ParseUint(lotIdStr, 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lot id", err)
	}

	var spots []model.ParkingSpot
	if err := database.DB.
		Where("lot_id = ?", lotId).
		Order("spot_number ASC").
		Find(&spots).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, spots)
}

// DeleteSpot removes a single vacant spot and decrements the parent lot's
// declared total in the same transaction.
func DeleteSpot(c *fiber.Ctx) error {
	db := database.DB
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	spotIdStr := c.Params("spotId")
	spotId, err := strconv.ParseUint(spotIdStr, 10, 64)
	if err != nil || spotId == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid spot id", err)
	}

	tx := db.Begin()

	var spot model.ParkingSpot
	if err := tx.First(&spot, spotId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Spot not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if spot.IsOccupied {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SPOT_OCCUPIED, errors.New("spot occupied"), "spotId")
	}

	var open int64
	if err := tx.Model(&model.Reservation{}).
		Where("spot_id = ? AND leaving_timestamp IS NULL", spot.ID).
		Count(&open).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if open > 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SPOT_OCCUPIED, errors.New("open reservation exists"), "spotId")
	}

	if err := tx.Where("spot_id = ?", spot.ID).Delete(&model.Reservation{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Delete(&spot).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	if err := tx.Model(&model.ParkingLot{}).
		Where("id = ?", spot.LotID).
		Update("total_spots", gorm.Expr("total_spots - 1")).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	helper.PublishLotAvailability(spot.LotID)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Spot deleted",
		"spotId":  spot.ID,
		"deleted": true,
	})
}
