package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/warung-pos/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeed_UsersAndCatalog(t *testing.T) {
	db := setupTestDB(t)
	pw := SeedPasswords{Admin: "a", Cashier: "k", Kitchen: "d"}
	require.NoError(t, Seed(db, pw))

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 3)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, models.RoleCashier, users[1].Role)
	assert.Equal(t, models.RoleKitchen, users[2].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[1].Password), []byte("k")))

	var count int64
	require.NoError(t, db.Model(&models.CatalogItem{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultCatalog())), count)
}

func TestSeed_DoesNotOverwrite(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db, SeedPasswords{Admin: "a", Cashier: "k", Kitchen: "d"}))
	require.NoError(t, db.Delete(&models.CatalogItem{}, "id = ?", "drink-es-jeruk").Error)

	// password baru tidak menimpa akun lama, katalog yang sudah terisi tidak di-seed ulang
	require.NoError(t, Seed(db, SeedPasswords{Admin: "lain", Cashier: "lain", Kitchen: "lain"}))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("a")))

	var count int64
	require.NoError(t, db.Model(&models.CatalogItem{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultCatalog())-1), count)
}
