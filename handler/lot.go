package handler

import (
	"errors"
	"log"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetLots(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	var lots []model.ParkingLot
	if err := database.DB.
		Preload("Spots", func(db *gorm.DB) *gorm.DB {
			return db.Order("spot_number ASC")
		}).
		Order("name ASC").
		Find(&lots).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch parking lots", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, lots)
}

func GetLotById(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	lotIdStr := c.Params("lotId")
	lotId, err := strconv.ParseUint(lotIdStr, 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lot id", err)
	}

	var lot model.ParkingLot
	if err := database.DB.
		Preload("Spots", func(db *gorm.DB) *gorm.DB {
			return db.Order("spot_number ASC")
		}).
		First(&lot, lotId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Parking lot not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, lot)
}

// CreateLot inserts the lot and fans out exactly TotalSpots spot rows
// numbered 1..N, in one transaction.
func CreateLot(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("createLotInput").(model.CreateLotInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	tx := db.Begin()
	newLot := &model.ParkingLot{
		Name:         input.Name,
		Slug:         helper.GenerateUniqueLotSlug(tx, input.Name),
		Address:      input.Address,
		Pincode:      input.Pincode,
		PricePerHour: input.PricePerHour,
		TotalSpots:   input.TotalSpots,
	}

	if err := tx.Create(newLot).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	spotsToCreate := make([]model.ParkingSpot, 0, input.TotalSpots)
	for n := 1; n <= input.TotalSpots; n++ {
		spotsToCreate = append(spotsToCreate, model.ParkingSpot{
			LotID:      newLot.ID,
			SpotNumber: n,
			IsOccupied: false,
		})
	}
	if err := tx.Create(&spotsToCreate).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create spots", err)
	}

	var createdLot model.ParkingLot
	if err := tx.
		Preload("Spots", func(db *gorm.DB) *gorm.DB {
			return db.Order("spot_number ASC")
		}).
		First(&createdLot, newLot.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load created lot", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, createdLot)
}

// EditLot updates lot fields and resizes the spot set. Growing appends spots
// numbered after the current maximum. Shrinking removes the highest-numbered
// spots and is refused when any of them is occupied, so an open reservation
// can never lose its spot row.
func EditLot(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("editLotInput").(model.EditLotInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	lotId, ok := c.Locals("lotId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	tx := db.Begin()
	var lot model.ParkingLot
	if err := tx.Preload("Spots").First(&lot, lotId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Parking lot not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil && *input.Name != lot.Name {
		lot.Name = *input.Name
		lot.Slug = helper.GenerateUniqueLotSlug(tx, lot.Name)
	}
	if input.Address != nil {
		lot.Address = *input.Address
	}
	if input.Pincode != nil {
		lot.Pincode = *input.Pincode
	}
	if input.PricePerHour != nil {
		lot.PricePerHour = *input.PricePerHour
	}

	if input.TotalSpots != nil && *input.TotalSpots != lot.TotalSpots {
		newTotal := *input.TotalSpots

		maxNumber := 0
		for _, s := range lot.Spots {
			if s.SpotNumber > maxNumber {
				maxNumber = s.SpotNumber
			}
		}

		if newTotal > len(lot.Spots) {
			toAdd := make([]model.ParkingSpot, 0, newTotal-len(lot.Spots))
			for n := maxNumber + 1; len(lot.Spots)+len(toAdd) < newTotal; n++ {
				toAdd = append(toAdd, model.ParkingSpot{
					LotID:      lot.ID,
					SpotNumber: n,
					IsOccupied: false,
				})
			}
			if err := tx.Create(&toAdd).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add spots", err)
			}
		} else if newTotal < len(lot.Spots) {
			var victims []model.ParkingSpot
			if err := tx.Where("lot_id = ?", lot.ID).
				Order("spot_number DESC").
				Limit(len(lot.Spots) - newTotal).
				Find(&victims).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}

			victimIds := make([]uint, 0, len(victims))
			for _, s := range victims {
				if s.IsOccupied {
					tx.Rollback()
					return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SHRINK_OCCUPIED_SPOTS, errors.New("occupied spot in truncation range"), "totalSpots")
				}
				victimIds = append(victimIds, s.ID)
			}

			// Spots with closed reservations keep the history rows alive:
			// only the spot rows and their dead history go.
			var openCount int64
			if err := tx.Model(&model.Reservation{}).
				Where("spot_id IN ? AND leaving_timestamp IS NULL", victimIds).
				Count(&openCount).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			if openCount > 0 {
				tx.Rollback()
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SHRINK_OCCUPIED_SPOTS, errors.New("open reservation in truncation range"), "totalSpots")
			}

			if err := tx.Where("spot_id IN ?", victimIds).Delete(&model.Reservation{}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
			}
			if err := tx.Where("id IN ?", victimIds).Delete(&model.ParkingSpot{}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
			}
		}

		lot.TotalSpots = newTotal
	}

	lot.Spots = nil
	if err := tx.Save(&lot).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	var updatedLot model.ParkingLot
	if err := tx.
		Preload("Spots", func(db *gorm.DB) *gorm.DB {
			return db.Order("spot_number ASC")
		}).
		First(&updatedLot, lot.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load updated lot", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	helper.PublishLotAvailability(lot.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, updatedLot)
}

// DeleteLot refuses while any spot is occupied, then cascades explicitly:
// reservations, spots, lot, in one transaction.
func DeleteLot(c *fiber.Ctx) error {
	db := database.DB
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	lotIdStr := c.Params("lotId")
	lotId, err := strconv.ParseUint(lotIdStr, 10, 64)
	if err != nil || lotId == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lot id", err)
	}

	tx := db.Begin()

	var lot model.ParkingLot
	if err := tx.First(&lot, lotId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Parking lot not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var occupied int64
	if err := tx.Model(&model.ParkingSpot{}).
		Where("lot_id = ? AND is_occupied = ?", lot.ID, true).
		Count(&occupied).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if occupied > 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.LOT_HAS_OCCUPIED_SPOTS, errors.New("occupied spots exist"), "lotId")
	}

	if err := tx.Where("lot_id = ?", lot.ID).Delete(&model.Reservation{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Where("lot_id = ?", lot.ID).Delete(&model.ParkingSpot{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Delete(&lot).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	log.Printf("ADMIN DELETE LOT: lotId=%d", lot.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Parking lot deleted",
		"lotId":   lot.ID,
		"deleted": true,
	})
}
