package database

import (
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/utils"
	"gorm.io/gorm"
)

// AutoMigrate membuat / memperbarui semua tabel aplikasi
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.TransactionRecord{},
		&models.ClosedDay{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
