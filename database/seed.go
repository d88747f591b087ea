package database

import (
	"log"
	"parking_manager/config"
	"parking_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData guarantees exactly one admin user exists.
func SeedData(db *gorm.DB) {
	username := config.ConfigDefault("ADMIN_USERNAME", "admin123@gmail.com")
	password := config.ConfigDefault("ADMIN_PASSWORD", "admin123")

	var admin model.User
	if err := db.Where(model.User{IsAdmin: true}).First(&admin).Error; err == nil {
		return
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}

	admin = model.User{
		Name:     "Admin",
		Address:  "Admin Address",
		Pincode:  "123456",
		Username: username,
		Passhash: string(bytes),
		IsAdmin:  true,
	}
	if err := db.Where(model.User{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}
}
