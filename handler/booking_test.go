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

func TestBookSpotAllocatesLowestVacant(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 3, 10)

	require.NoError(t, db.Model(&model.ParkingSpot{}).
		Where("lot_id = ? AND spot_number = ?", lot.ID, 1).
		Update("is_occupied", true).Error)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["code"])
	spot := data["spot"].(map[string]any)
	assert.Equal(t, float64(2), spot["spotNumber"])

	var open []model.Reservation
	require.NoError(t, db.Where("user_id = ? AND leaving_timestamp IS NULL", user.ID).Find(&open).Error)
	require.Len(t, open, 1)
	assert.Nil(t, open[0].TotalCost)

	var claimed model.ParkingSpot
	require.NoError(t, db.First(&claimed, open[0].SpotID).Error)
	assert.True(t, claimed.IsOccupied)
	assert.Equal(t, 2, claimed.SpotNumber)
}

func TestBookSpotRejectsAlreadyParkedVehicle(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lotA := createLot(t, db, "Lot A", 2, 10)
	lotB := createLot(t, db, "Lot B", 2, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lotA.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lotB.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var open int64
	db.Model(&model.Reservation{}).Where("leaving_timestamp IS NULL").Count(&open)
	assert.Equal(t, int64(1), open)
}

func TestBookSpotRejectsSecondReservationInLot(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	first := createVehicle(t, db, user.ID, "KA01AB1234")
	second := createVehicle(t, db, user.ID, "KA01CD5678")
	lot := createLot(t, db, "Central Garage", 3, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": first.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": second.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBookSpotRejectsForeignVehicle(t *testing.T) {
	app, db := setupApp(t)
	owner := createUser(t, db, "owner@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	vehicle := createVehicle(t, db, owner.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 3, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, other), map[string]any{
		"vehicleId": vehicle.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBookSpotFullLot(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Tiny Lot", 1, 10)

	require.NoError(t, db.Model(&model.ParkingSpot{}).
		Where("lot_id = ?", lot.ID).
		Update("is_occupied", true).Error)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&model.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReleasePricesByElapsedHours(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 2, 10)

	var spot model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ? AND spot_number = ?", lot.ID, 1).First(&spot).Error)
	require.NoError(t, db.Model(&spot).Update("is_occupied", true).Error)

	reservation := &model.Reservation{
		Code:             uuid.NewString(),
		UserID:           user.ID,
		LotID:            lot.ID,
		SpotID:           spot.ID,
		VehicleID:        vehicle.ID,
		ParkingTimestamp: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(reservation).Error)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/reservation/%d/release", reservation.ID), tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var closed model.Reservation
	require.NoError(t, db.First(&closed, reservation.ID).Error)
	require.NotNil(t, closed.LeavingTimestamp)
	require.NotNil(t, closed.TotalCost)
	// 2 hours at 10/hr, give the request a little leeway
	assert.InDelta(t, 20.0, *closed.TotalCost, 0.05)

	var released model.ParkingSpot
	require.NoError(t, db.First(&released, spot.ID).Error)
	assert.False(t, released.IsOccupied)
}

func TestReleaseTwiceRejected(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 2, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reservation model.Reservation
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&reservation).Error)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/v1/reservation/%d/release", reservation.ID), tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/v1/reservation/%d/release", reservation.ID), tokenFor(t, user), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReleaseRejectsForeignReservation(t *testing.T) {
	app, db := setupApp(t)
	owner := createUser(t, db, "owner@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	vehicle := createVehicle(t, db, owner.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 2, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, owner), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reservation model.Reservation
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&reservation).Error)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/v1/reservation/%d/release", reservation.ID), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var still model.Reservation
	require.NoError(t, db.First(&still, reservation.ID).Error)
	assert.True(t, still.Open())
}

func TestParkingHistoryOpenFirst(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 3, 10)

	var spot model.ParkingSpot
	require.NoError(t, db.Where("lot_id = ? AND spot_number = ?", lot.ID, 1).First(&spot).Error)

	leftAt := time.Now().Add(-24 * time.Hour)
	cost := 30.0
	require.NoError(t, db.Create(&model.Reservation{
		Code:             uuid.NewString(),
		UserID:           user.ID,
		LotID:            lot.ID,
		SpotID:           spot.ID,
		VehicleID:        vehicle.ID,
		ParkingTimestamp: time.Now().Add(-27 * time.Hour),
		LeavingTimestamp: &leftAt,
		TotalCost:        &cost,
	}).Error)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/v1/reservation/history", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["data"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	assert.Nil(t, first["leavingTimestamp"], "open reservation should come first")
	assert.NotNil(t, second["leavingTimestamp"])
}

func TestReservationQR(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "driver@example.com", false)
	vehicle := createVehicle(t, db, user.ID, "KA01AB1234")
	lot := createLot(t, db, "Central Garage", 2, 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/v1/lot/%d/book", lot.ID), tokenFor(t, user), map[string]any{
		"vehicleId": vehicle.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reservation model.Reservation
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&reservation).Error)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/v1/reservation/%s/qr", reservation.Code), tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	other := createUser(t, db, "other@example.com", false)
	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/v1/reservation/%s/qr", reservation.Code), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
