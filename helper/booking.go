package helper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"parking_manager/database"
	"parking_manager/model"
	"parking_manager/utils"
	"time"

	"gorm.io/gorm"
)

var ErrLotFull = errors.New("no vacant spot in lot")

// AllocateSpot claims the lowest-numbered vacant spot of a lot inside tx.
// The claim is a conditional update: if another transaction grabbed the same
// spot first, zero rows are affected and the next candidate is tried.
func AllocateSpot(tx *gorm.DB, lotId uint) (*model.ParkingSpot, error) {
	var spots []model.ParkingSpot
	if err := tx.Where("lot_id = ? AND is_occupied = ?", lotId, false).
		Order("spot_number ASC").
		Find(&spots).Error; err != nil {
		return nil, err
	}

	for i := range spots {
		result := tx.Model(&model.ParkingSpot{}).
			Where("id = ? AND is_occupied = ?", spots[i].ID, false).
			Update("is_occupied", true)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 1 {
			spots[i].IsOccupied = true
			return &spots[i], nil
		}
	}
	return nil, ErrLotFull
}

// ComputeCost prices a closed reservation: elapsed hours times the lot's
// hourly rate, rounded to 2 decimals. Never negative.
func ComputeCost(parkedAt, leftAt time.Time, pricePerHour float64) float64 {
	hours := leftAt.Sub(parkedAt).Seconds() / 3600
	if hours < 0 {
		hours = 0
	}
	return utils.Round2(hours * pricePerHour)
}

// LotAvailability builds the snapshot pushed over the lot websocket.
func LotAvailability(db *gorm.DB, lotId uint) (*model.LotSummary, error) {
	var lot model.ParkingLot
	if err := db.First(&lot, lotId).Error; err != nil {
		return nil, err
	}
	var occupied int64
	if err := db.Model(&model.ParkingSpot{}).
		Where("lot_id = ? AND is_occupied = ?", lotId, true).
		Count(&occupied).Error; err != nil {
		return nil, err
	}
	return &model.LotSummary{
		ID:             lot.ID,
		Name:           lot.Name,
		Address:        lot.Address,
		Pincode:        lot.Pincode,
		TotalSpots:     lot.TotalSpots,
		PricePerHour:   lot.PricePerHour,
		OccupiedSpots:  int(occupied),
		AvailableSpots: lot.TotalSpots - int(occupied),
	}, nil
}

// PublishLotAvailability pushes the current snapshot to the lot's redis
// channel. Best effort: booking never fails because redis is down.
func PublishLotAvailability(lotId uint) {
	if database.Redis == nil {
		return
	}
	snapshot, err := LotAvailability(database.DB, lotId)
	if err != nil {
		log.Printf("failed to build availability snapshot for lot %d: %v", lotId, err)
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := database.Redis.Publish(context.Background(), LotChannel(lotId), payload).Err(); err != nil {
		log.Printf("failed to publish availability for lot %d: %v", lotId, err)
	}
}

func LotChannel(lotId uint) string {
	return fmt.Sprintf("lot:%d", lotId)
}
