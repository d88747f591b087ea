package model

type ParkingLot struct {
	DTO
	Name         string  `gorm:"size:50;not null" validate:"required" json:"name"`
	Slug         string  `gorm:"size:60;uniqueIndex" json:"slug"`
	Address      string  `gorm:"size:100;not null" json:"address"`
	Pincode      string  `gorm:"size:10;not null" json:"pincode"`
	PricePerHour float64 `gorm:"not null" validate:"required,gt=0" json:"pricePerHour"`
	TotalSpots   int     `gorm:"not null" validate:"required,min=1" json:"totalSpots"`

	Spots        []ParkingSpot `gorm:"foreignKey:LotID" json:"spots,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:LotID" json:"-"`
}

type ParkingLots []ParkingLot

type CreateLotInput struct {
	Name         string  `json:"name" validate:"required,max=50"`
	Address      string  `json:"address" validate:"required,max=100"`
	Pincode      string  `json:"pincode" validate:"required"`
	PricePerHour float64 `json:"pricePerHour" validate:"required,gt=0"`
	TotalSpots   int     `json:"totalSpots" validate:"required,min=1,max=500"`
}

type EditLotInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=50"`
	Address      *string  `json:"address" validate:"omitempty,max=100"`
	Pincode      *string  `json:"pincode"`
	PricePerHour *float64 `json:"pricePerHour" validate:"omitempty,gt=0"`
	TotalSpots   *int     `json:"totalSpots" validate:"omitempty,min=1,max=500"`
}

// LotSummary is the wire shape of the public /api/parking_lot endpoint.
type LotSummary struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Pincode        string  `json:"pincode"`
	TotalSpots     int     `json:"total_spots"`
	PricePerHour   float64 `json:"price_per_hour"`
	OccupiedSpots  int     `json:"occupied_spots"`
	AvailableSpots int     `json:"available_spots"`
}
