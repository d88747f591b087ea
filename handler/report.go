package handler

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetAdminSummary(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB
	var summary model.AdminSummary

	db.Model(&model.User{}).Where("is_admin = ?", false).Count(&summary.Users)
	db.Model(&model.Vehicle{}).Count(&summary.Vehicles)
	db.Model(&model.ParkingLot{}).Count(&summary.Lots)
	db.Model(&model.ParkingSpot{}).Count(&summary.Spots)
	db.Model(&model.Reservation{}).Where("leaving_timestamp IS NULL").Count(&summary.OpenReservations)

	if err := db.Raw(`
        SELECT l.id AS lot_id, l.name AS lot_name,
               COUNT(r.id) AS reservations,
               COALESCE(SUM(r.total_cost), 0) AS revenue
        FROM parking_lots l
        LEFT JOIN reservations r ON r.lot_id = l.id AND r.leaving_timestamp IS NOT NULL
        GROUP BY l.id, l.name
        ORDER BY l.name
    `).Scan(&summary.Revenue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Raw(`
        SELECT l.id AS lot_id, l.name AS lot_name,
               COUNT(s.id) AS total,
               COALESCE(SUM(CASE WHEN s.is_occupied THEN 1 ELSE 0 END), 0) AS occupied,
               COALESCE(SUM(CASE WHEN s.is_occupied THEN 0 ELSE 1 END), 0) AS available
        FROM parking_lots l
        LEFT JOIN parking_spots s ON s.lot_id = l.id
        GROUP BY l.id, l.name
        ORDER BY l.name
    `).Scan(&summary.Occupancy).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, r := range summary.Revenue {
		summary.TotalRevenue += r.Revenue
	}
	summary.TotalRevenue = utils.Round2(summary.TotalRevenue)

	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

func GetUserSummary(c *fiber.Ctx) error {
	claim, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	db := database.DB
	var summary model.UserSummary

	db.Model(&model.Reservation{}).Where("user_id = ?", claim.UserId).Count(&summary.Reservations)
	db.Model(&model.Reservation{}).
		Where("user_id = ? AND leaving_timestamp IS NULL", claim.UserId).
		Count(&summary.OpenReservations)

	if err := db.Raw(`
        SELECT l.id AS lot_id, l.name AS lot_name,
               COUNT(r.id) AS reservations,
               COALESCE(SUM(r.total_cost), 0) AS total_spent
        FROM reservations r
        JOIN parking_lots l ON l.id = r.lot_id
        WHERE r.user_id = ?
        GROUP BY l.id, l.name
        ORDER BY l.name
    `, claim.UserId).Scan(&summary.PerLot).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, l := range summary.PerLot {
		summary.TotalSpent += l.TotalSpent
	}
	summary.TotalSpent = utils.Round2(summary.TotalSpent)

	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

// GetPublicLots serves the unauthenticated lot summary feed.
func GetPublicLots(c *fiber.Ctx) error {
	db := database.DB

	var lots []model.ParkingLot
	if err := db.Order("id ASC").Find(&lots).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	summaries := make([]model.LotSummary, 0, len(lots))
	for _, lot := range lots {
		var occupied int64
		db.Model(&model.ParkingSpot{}).
			Where("lot_id = ? AND is_occupied = ?", lot.ID, true).
			Count(&occupied)
		summaries = append(summaries, model.LotSummary{
			ID:             lot.ID,
			Name:           lot.Name,
			Address:        lot.Address,
			Pincode:        lot.Pincode,
			TotalSpots:     lot.TotalSpots,
			PricePerHour:   lot.PricePerHour,
			OccupiedSpots:  int(occupied),
			AvailableSpots: lot.TotalSpots - int(occupied),
		})
	}

	return c.JSON(fiber.Map{"parkinglots": summaries})
}

func GetPublicLotBySlug(c *fiber.Ctx) error {
	db := database.DB
	slug := c.Params("slug")

	var lot model.ParkingLot
	if err := db.Where("slug = ?", slug).First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Parking lot not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	summary, err := helper.LotAvailability(db, lot.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return c.JSON(summary)
}
