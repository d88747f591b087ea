package helper

import (
	"log"
	"parking_manager/database"
	"parking_manager/model"

	"github.com/robfig/cron/v3"
)

var reconcileScheduler *cron.Cron

// StartOccupancyReconciler repairs spot occupancy flags every 5 minutes so
// that is_occupied always mirrors "exists an open reservation for this spot".
func StartOccupancyReconciler() {
	reconcileScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reconcileScheduler.AddFunc("*/5 * * * *", ReconcileOccupancy)
	if err != nil {
		log.Printf("failed to start occupancy reconciler: %v", err)
		return
	}

	reconcileScheduler.Start()
	log.Println("occupancy reconciler started (every 5 minutes)")
}

func StopOccupancyReconciler() {
	if reconcileScheduler != nil {
		reconcileScheduler.Stop()
		log.Println("occupancy reconciler stopped")
	}
}

// ReconcileOccupancy flips flags that drifted from the open-reservation state.
func ReconcileOccupancy() {
	db := database.DB

	stale := db.Model(&model.ParkingSpot{}).
		Where("is_occupied = ? AND NOT EXISTS (SELECT 1 FROM reservations r WHERE r.spot_id = parking_spots.id AND r.leaving_timestamp IS NULL)", true).
		Update("is_occupied", false)
	if stale.Error != nil {
		log.Printf("occupancy reconcile (stale) failed: %v", stale.Error)
		return
	}

	missing := db.Model(&model.ParkingSpot{}).
		Where("is_occupied = ? AND EXISTS (SELECT 1 FROM reservations r WHERE r.spot_id = parking_spots.id AND r.leaving_timestamp IS NULL)", false).
		Update("is_occupied", true)
	if missing.Error != nil {
		log.Printf("occupancy reconcile (missing) failed: %v", missing.Error)
		return
	}

	if stale.RowsAffected > 0 || missing.RowsAffected > 0 {
		log.Printf("occupancy reconciled: %d spots vacated, %d spots marked occupied",
			stale.RowsAffected, missing.RowsAffected)
	}
}
