package model

type User struct {
	DTO
	Name     string `gorm:"size:32;not null" validate:"required" json:"name"`
	Address  string `gorm:"size:100;not null" json:"address"`
	Pincode  string `gorm:"size:10;not null" json:"pincode"`
	Username string `gorm:"size:32;uniqueIndex;not null" validate:"required,email" json:"username"`
	Passhash string `gorm:"size:256;not null" json:"-"`
	IsAdmin  bool   `gorm:"default:false" json:"isAdmin"`

	Vehicles     []Vehicle     `gorm:"foreignKey:UserID" json:"vehicles,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:UserID" json:"-"`
}

type Users []User

type RegisterUserInput struct {
	Name            string `json:"name" validate:"required,max=32"`
	Address         string `json:"address" validate:"required,max=100"`
	Pincode         string `json:"pincode" validate:"required"`
	Username        string `json:"username" validate:"required,email,max=32"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type EditProfileInput struct {
	Name            string  `json:"name" validate:"required,max=32"`
	Address         string  `json:"address" validate:"required,max=100"`
	Pincode         string  `json:"pincode" validate:"required"`
	Username        string  `json:"username" validate:"required,email,max=32"`
	CurrentPassword string  `json:"currentPassword" validate:"required"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
}

type FilterUser struct {
	Pagination
	SearchKey string `json:"searchKey"`
}
