package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/router"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBSeq int64

// setupApp wires the full route table against a fresh in-memory database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:handler_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *model.User {
	t.Helper()
	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)
	user := &model.User{
		Name:     "Test User",
		Address:  "12 Main St",
		Pincode:  "600001",
		Username: username,
		Passhash: hash,
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Username: user.Username})
	require.NoError(t, err)
	return token
}

func createVehicle(t *testing.T, db *gorm.DB, userId uint, number string) *model.Vehicle {
	t.Helper()
	vehicle := &model.Vehicle{UserID: userId, VehicleNumber: number, VehicleType: "car"}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func createLot(t *testing.T, db *gorm.DB, name string, totalSpots int, pricePerHour float64) *model.ParkingLot {
	t.Helper()
	lot := &model.ParkingLot{
		Name:         name,
		Slug:         helper.GenerateUniqueLotSlug(db, name),
		Address:      "1 Station Rd",
		Pincode:      "600042",
		PricePerHour: pricePerHour,
		TotalSpots:   totalSpots,
	}
	require.NoError(t, db.Create(lot).Error)
	for n := 1; n <= totalSpots; n++ {
		require.NoError(t, db.Create(&model.ParkingSpot{LotID: lot.ID, SpotNumber: n}).Error)
	}
	return lot
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
