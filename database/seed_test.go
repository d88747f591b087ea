package database

import (
	"parking_manager/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestSeedDataCreatesSingleAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	Migrate(db)

	SeedData(db)

	var admin model.User
	require.NoError(t, db.Where("is_admin = ?", true).First(&admin).Error)
	assert.Equal(t, "admin123@gmail.com", admin.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Passhash), []byte("admin123")))

	// idempotent
	SeedData(db)

	var count int64
	db.Model(&model.User{}).Where("is_admin = ?", true).Count(&count)
	assert.Equal(t, int64(1), count)
}
