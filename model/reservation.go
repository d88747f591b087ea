package model

import "time"

type Reservation struct {
	DTO
	Code             string     `gorm:"size:40;uniqueIndex" json:"code"`
	UserID           uint       `gorm:"not null;index" json:"userId"`
	LotID            uint       `gorm:"not null;index" json:"lotId"`
	SpotID           uint       `gorm:"not null;index" json:"spotId"`
	VehicleID        uint       `gorm:"not null;index" json:"vehicleId"`
	ParkingTimestamp time.Time  `gorm:"not null" json:"parkingTimestamp"`
	LeavingTimestamp *time.Time `json:"leavingTimestamp"`
	TotalCost        *float64   `json:"totalCost"`

	User    User        `gorm:"foreignKey:UserID" json:"-"`
	Lot     ParkingLot  `gorm:"foreignKey:LotID" json:"lot,omitempty"`
	Spot    ParkingSpot `gorm:"foreignKey:SpotID" json:"spot,omitempty"`
	Vehicle Vehicle     `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

type Reservations []Reservation

// Open reports whether the reservation has no recorded leaving time yet.
func (r *Reservation) Open() bool {
	return r.LeavingTimestamp == nil
}

type BookSpotInput struct {
	VehicleID uint `json:"vehicleId" validate:"required,gt=0"`
}
