package model

type ParkingSpot struct {
	DTO
	LotID      uint `gorm:"not null;index" json:"lotId"`
	SpotNumber int  `gorm:"not null" validate:"required,min=1" json:"spotNumber"`
	IsOccupied bool `gorm:"default:false" json:"isOccupied"`

	Lot          ParkingLot    `gorm:"foreignKey:LotID" json:"-"`
	Reservations []Reservation `gorm:"foreignKey:SpotID" json:"-"`
}

type ParkingSpots []ParkingSpot
