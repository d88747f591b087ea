package model

type Vehicle struct {
	DTO
	UserID        uint   `gorm:"not null" json:"userId"`
	VehicleNumber string `gorm:"size:25;uniqueIndex;not null" validate:"required" json:"vehicleNumber"`
	VehicleType   string `gorm:"size:20" json:"vehicleType"`

	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Reservations []Reservation `gorm:"foreignKey:VehicleID" json:"-"`
}

type Vehicles []Vehicle

type CreateVehicleInput struct {
	VehicleNumber string `json:"vehicleNumber" validate:"required,max=25"`
	VehicleType   string `json:"vehicleType" validate:"omitempty,max=20"`
}

type EditVehicleInput struct {
	VehicleNumber *string `json:"vehicleNumber" validate:"omitempty,max=25"`
	VehicleType   *string `json:"vehicleType" validate:"omitempty,max=20"`
}
