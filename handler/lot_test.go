package handler_test

import (
	"fmt"
	"net/http"
	"parking_manager/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLotFansOutNumberedSpots(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)

	resp := doRequest(t, app, "POST", "/api/v1/lot/", tokenFor(t, admin), map[string]any{
		"name":         "Central Garage",
		"address":      "1 Station Rd",
		"pincode":      "600042",
		"pricePerHour": 15.5,
		"totalSpots":   4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var lot model.ParkingLot
	require.NoError(t, db.Where("name = ?", "Central Garage").First(&lot).Error)
	assert.Equal(t, "central-garage", lot.Slug)

	var spots []model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ?", lot.ID).Order("spot_number ASC").Find(&spots).Error)
	require.Len(t, spots, 4)
	for i, spot := range spots {
		assert.Equal(t, i+1, spot.SpotNumber)
		assert.False(t, spot.IsOccupied)
	}
}

func TestCreateLotRequiresAdmin(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "user@example.com", false)

	resp := doRequest(t, app, "POST", "/api/v1/lot/", tokenFor(t, user), map[string]any{
		"name":         "Central Garage",
		"address":      "1 Station Rd",
		"pincode":      "600042",
		"pricePerHour": 15.5,
		"totalSpots":   4,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&model.ParkingLot{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEditLotGrowAppendsSpots(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)
	lot := createLot(t, db, "North Lot", 2, 10)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, admin), map[string]any{
		"totalSpots": 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var spots []model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ?", lot.ID).Order("spot_number ASC").Find(&spots).Error)
	require.Len(t, spots, 4)
	assert.Equal(t, 3, spots[2].SpotNumber)
	assert.Equal(t, 4, spots[3].SpotNumber)

	var updated model.ParkingLot
	require.NoError(t, db.First(&updated, lot.ID).Error)
	assert.Equal(t, 4, updated.TotalSpots)
}

func TestEditLotShrinkRemovesHighestSpots(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)
	lot := createLot(t, db, "North Lot", 5, 10)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, admin), map[string]any{
		"totalSpots": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var spots []model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ?", lot.ID).Order("spot_number ASC").Find(&spots).Error)
	require.Len(t, spots, 3)
	assert.Equal(t, 1, spots[0].SpotNumber)
	assert.Equal(t, 3, spots[2].SpotNumber)
}

func TestEditLotShrinkRefusedWhenVictimOccupied(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "North Lot", 5, 10)

	// park in the highest-numbered spot, inside the truncation range
	var spot model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ? AND spot_number = ?", lot.ID, 5).First(&spot).Error)
	require.NoError(t, db.Model(&spot).Update("is_occupied", true).Error)
	require.NoError(t, db.Create(&model.Reservation{
		Code:             uuid.NewString(),
		UserID:           user.ID,
		LotID:            lot.ID,
		SpotID:           spot.ID,
		VehicleID:        vehicle.ID,
		ParkingTimestamp: time.Now(),
	}).Error)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, admin), map[string]any{
		"totalSpots": 3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nothing was removed
	var count int64
	db.Model(&model.ParkingSpot{}).Where("lot_id = ?", lot.ID).Count(&count)
	assert.Equal(t, int64(5), count)

	var unchanged model.ParkingLot
	require.NoError(t, db.First(&unchanged, lot.ID).Error)
	assert.Equal(t, 5, unchanged.TotalSpots)
}

func TestDeleteLotRefusedWhenOccupied(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)
	lot := createLot(t, db, "North Lot", 3, 10)

	require.NoError(t, db.Model(&model.ParkingSpot{}).
		Where("lot_id = ? AND spot_number = ?", lot.ID, 1).
		Update("is_occupied", true).Error)

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&model.ParkingLot{}).Where("id = ?", lot.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLotCascades(t *testing.T) {
	app, db := setupApp(t)
	admin := createUser(t, db, "admin@example.com", true)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "North Lot", 3, 10)

	// closed reservation history only, no occupied spots
	var spot model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ? AND spot_number = ?", lot.ID, 1).First(&spot).Error)
	parkedAt := time.Now().Add(-2 * time.Hour)
	leftAt := time.Now().Add(-time.Hour)
	cost := 10.0
	require.NoError(t, db.Create(&model.Reservation{
		Code:             uuid.NewString(),
		UserID:           user.ID,
		LotID:            lot.ID,
		SpotID:           spot.ID,
		VehicleID:        vehicle.ID,
		ParkingTimestamp: parkedAt,
		LeavingTimestamp: &leftAt,
		TotalCost:        &cost,
	}).Error)

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lots, spots, reservations int64
	db.Model(&model.ParkingLot{}).Where("id = ?", lot.ID).Count(&lots)
	db.Model(&model.ParkingSpot{}).Where("lot_id = ?", lot.ID).Count(&spots)
	db.Model(&model.Reservation{}).Where("lot_id = ?", lot.ID).Count(&reservations)
	assert.Equal(t, int64(0), lots)
	assert.Equal(t, int64(0), spots)
	assert.Equal(t, int64(0), reservations)
}

func TestDeleteLotRequiresAdmin(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	lot := createLot(t, db, "North Lot", 3, 10)

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/v1/lot/%d", lot.ID), tokenFor(t, user), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
