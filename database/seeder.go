package database

import (
	"fmt"

	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPasswords -> password awal akun bawaan
type SeedPasswords struct {
	Admin   string
	Cashier string
	Kitchen string
}

// DefaultCatalog adalah katalog awal warung
func DefaultCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "menu-bangladesh-complete", Kind: models.KindMenu, Name: "Mie Bangladesh Complete", Price: 30000, Position: 1},
		{ID: "menu-bangladesh", Kind: models.KindMenu, Name: "Mie Bangladesh", Price: 18000, Position: 2},
		{ID: "menu-mie-goreng", Kind: models.KindMenu, Name: "Mie Goreng", Price: 12000, Variants: []string{"Original", "Aceh"}, Position: 3},
		{ID: "menu-mie-kuah", Kind: models.KindMenu, Name: "Mie Kuah", Price: 12000, Variants: []string{"Soto", "Ayam Bawang"}, Position: 4},
		{ID: "menu-mie-double", Kind: models.KindMenu, Name: "Mie Double", Price: 18000, Position: 5},
		{ID: "menu-nasi-ayam", Kind: models.KindMenu, Name: "Nasi Ayam Panggang", Price: 20000, Position: 6},

		{ID: "top-sosis", Kind: models.KindTopping, Name: "Sosis", Price: 3000, Position: 10},
		{ID: "top-pangsit", Kind: models.KindTopping, Name: "Pangsit", Price: 2000, Position: 11},
		{ID: "top-bakso", Kind: models.KindTopping, Name: "Bakso 2 pcs", Price: 4000, Position: 12},
		{ID: "top-tahu", Kind: models.KindTopping, Name: "Tahu", Price: 2000, Position: 13},
		{ID: "top-telur-dadar", Kind: models.KindTopping, Name: "Telur Dadar", Price: 4000, Position: 14},
		{ID: "top-telur-mata-sapi", Kind: models.KindTopping, Name: "Telur Mata Sapi", Price: 4000, Position: 15},
		{ID: "top-keju", Kind: models.KindTopping, Name: "Keju", Price: 3000, Position: 16},

		{ID: "drink-es-teh", Kind: models.KindDrink, Name: "Es Teh Manis", Price: 4000, Position: 20},
		{ID: "drink-es-jeruk", Kind: models.KindDrink, Name: "Es Jeruk", Price: 5000, Position: 21},
		{ID: "drink-air-mineral", Kind: models.KindDrink, Name: "Air Mineral", Price: 4000, Position: 22},
	}
}

// Seed mengisi akun bawaan dan katalog awal. Data yang sudah ada tidak ditimpa.
func Seed(db *gorm.DB, passwords SeedPasswords) error {
	users := []struct {
		user     models.User
		password string
	}{
		{models.User{Name: "Admin", Username: "admin", Role: models.RoleAdmin}, passwords.Admin},
		{models.User{Name: "Kasir", Username: "kasir", Role: models.RoleCashier}, passwords.Cashier},
		{models.User{Name: "Dapur", Username: "dapur", Role: models.RoleKitchen}, passwords.Kitchen},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password %s: %w", u.user.Username, err)
		}
		user := u.user
		user.Password = string(hashed)
		if err := db.Where(models.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
	}

	var count int64
	if err := db.Model(&models.CatalogItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := DefaultCatalog()
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	utils.InfoLogger.WithField("items", len(items)).Info("catalog seeded")
	return nil
}
