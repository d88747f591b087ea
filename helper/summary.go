package helper

import (
	"log"
	"parking_manager/database"
	"parking_manager/model"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var summaryScheduler gocron.Scheduler

// StartDailySummaryJob logs yesterday's revenue shortly after midnight and
// warns about reservations that have been open for more than a day.
func StartDailySummaryJob() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to create summary scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(LogDailySummary),
	)
	if err != nil {
		log.Printf("failed to schedule daily summary: %v", err)
		return
	}

	s.Start()
	summaryScheduler = s
}

func StopDailySummaryJob() {
	if summaryScheduler != nil {
		_ = summaryScheduler.Shutdown()
	}
}

func LogDailySummary() {
	db := database.DB
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	prevStart := dayStart.AddDate(0, 0, -1)

	var revenue float64
	db.Model(&model.Reservation{}).
		Where("leaving_timestamp >= ? AND leaving_timestamp < ?", prevStart, dayStart).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&revenue)

	var closed int64
	db.Model(&model.Reservation{}).
		Where("leaving_timestamp >= ? AND leaving_timestamp < ?", prevStart, dayStart).
		Count(&closed)

	log.Printf("daily summary %s: %d reservations closed, revenue %.2f",
		prevStart.Format("2006-01-02"), closed, revenue)

	var longStays []model.Reservation
	db.Where("leaving_timestamp IS NULL AND parking_timestamp < ?", now.Add(-24*time.Hour)).
		Find(&longStays)
	for _, r := range longStays {
		log.Printf("reservation %s open for more than 24h (spot %d, since %s)",
			r.Code, r.SpotID, r.ParkingTimestamp.Format(time.RFC3339))
	}
}
