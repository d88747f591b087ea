package handler

import (
	"errors"
	"fmt"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookSpot allocates the lowest-numbered vacant spot of a lot to one of the
// caller's vehicles. Preconditions: the vehicle belongs to the caller, has no
// open reservation anywhere, and the caller has no open reservation in this
// lot. Allocation and the occupancy flip happen in one transaction.
func BookSpot(c *fiber.Ctx) error {
	db := database.DB
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	lotId, ok := c.Locals("lotId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	input, ok := c.Locals("bookSpotInput").(model.BookSpotInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
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

	var vehicle model.Vehicle
	if err := tx.Where("id = ? AND user_id = ?", input.VehicleID, claim.UserId).First(&vehicle).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.VEHICLE_NOT_OWNED, err, "vehicleId")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var openForVehicle int64
	if err := tx.Model(&model.Reservation{}).
		Where("vehicle_id = ? AND leaving_timestamp IS NULL", vehicle.ID).
		Count(&openForVehicle).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if openForVehicle > 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.VEHICLE_ALREADY_PARKED, errors.New("open reservation exists for vehicle"), "vehicleId")
	}

	var openInLot int64
	if err := tx.Model(&model.Reservation{}).
		Where("user_id = ? AND lot_id = ? AND leaving_timestamp IS NULL", claim.UserId, lot.ID).
		Count(&openInLot).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if openInLot > 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.ALREADY_BOOKED_IN_LOT, errors.New("open reservation exists in lot"), "lotId")
	}

	spot, err := helper.AllocateSpot(tx, lot.ID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, helper.ErrLotFull) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.LOT_FULL, err, "lotId")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	reservation := &model.Reservation{
		Code:             uuid.NewString(),
		UserID:           claim.UserId,
		LotID:            lot.ID,
		SpotID:           spot.ID,
		VehicleID:        vehicle.ID,
		ParkingTimestamp: time.Now(),
	}
	if err := tx.Create(reservation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	helper.PublishLotAvailability(lot.ID)

	reservation.Lot = lot
	reservation.Spot = *spot
	reservation.Vehicle = vehicle
	return utils.SuccessResponse(c, fiber.StatusCreated, reservation)
}

// ReleaseReservation closes an open reservation at server time, prices it,
// and re-vacates the spot.
func ReleaseReservation(c *fiber.Ctx) error {
	db := database.DB
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	idStr := c.Params("reservationId")
	reservationId, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || reservationId == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid reservation id", err)
	}

	tx := db.Begin()

	var reservation model.Reservation
	if err := tx.Preload("Lot").Preload("Spot").Preload("Vehicle").First(&reservation, reservationId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if reservation.UserID != claim.UserId {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.RESERVATION_NOT_OWNED, errors.New("not reservation owner"))
	}
	if !reservation.Open() {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.RESERVATION_NOT_OPEN, errors.New("already released"), "reservationId")
	}

	// The leaving timestamp is taken here, at commit time. A client-supplied
	// timestamp would let the caller influence billing.
	leftAt := time.Now()
	cost := helper.ComputeCost(reservation.ParkingTimestamp, leftAt, reservation.Lot.PricePerHour)

	reservation.LeavingTimestamp = &leftAt
	reservation.TotalCost = &cost
	if err := tx.Save(&reservation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	if err := tx.Model(&model.ParkingSpot{}).
		Where("id = ?", reservation.SpotID).
		Update("is_occupied", false).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit failed", err)
	}

	helper.PublishLotAvailability(reservation.LotID)

	hours := leftAt.Sub(reservation.ParkingTimestamp).Seconds() / 3600
	utils.SendReceiptEmail(user.Username, utils.ReceiptData{
		Code:          reservation.Code,
		LotName:       reservation.Lot.Name,
		SpotNumber:    reservation.Spot.SpotNumber,
		VehicleNumber: reservation.Vehicle.VehicleNumber,
		ParkedAt:      reservation.ParkingTimestamp.Format(time.RFC3339),
		LeftAt:        leftAt.Format(time.RFC3339),
		Hours:         fmt.Sprintf("%.2f", hours),
		PricePerHour:  reservation.Lot.PricePerHour,
		TotalCost:     cost,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

// ParkingHistory lists the caller's reservations, open ones first.
func ParkingHistory(c *fiber.Ctx) error {
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	var reservations []model.Reservation
	if err := database.DB.
		Preload("Lot").
		Preload("Spot").
		Preload("Vehicle").
		Where("user_id = ?", claim.UserId).
		Order("leaving_timestamp IS NULL DESC").
		Order("parking_timestamp DESC").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, reservations)
}

// ReservationQR renders the reservation code as a PNG parking ticket.
func ReservationQR(c *fiber.Ctx) error {
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	code := c.Params("code")
	var reservation model.Reservation
	if err := database.DB.Where("code = ?", code).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if reservation.UserID != claim.UserId && !user.IsAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.RESERVATION_NOT_OWNED, errors.New("not reservation owner"))
	}

	png, err := utils.GenerateQRCode(reservation.Code, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR code", err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
