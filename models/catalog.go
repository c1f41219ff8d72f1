package models

import "time"

// Kind membedakan jenis entri katalog
type Kind string

const (
	KindMenu    Kind = "menu"
	KindTopping Kind = "topping"
	KindDrink   Kind = "drink"
)

// Category menentukan alur pemesanan untuk item menu utama.
type Category string

const (
	CategoryCombo          Category = "combo"
	CategoryRice           Category = "rice"
	CategoryStandardNoodle Category = "standard_noodle"
	CategoryDoubleNoodle   Category = "double_noodle"
	CategoryOther          Category = "other"
)

// CatalogItem adalah satu entri katalog: menu utama, topping (juga dijual sebagai lauk) atau minuman.
type CatalogItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Kind      Kind      `gorm:"type:varchar(20);not null;index" json:"kind"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     int64     `gorm:"not null;default:0" json:"price"`
	Variants  []string  `gorm:"serializer:json" json:"variants,omitempty"`
	Category  Category  `gorm:"type:varchar(30)" json:"category,omitempty"`
	Signature bool      `gorm:"not null;default:false" json:"signature,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

func (c CatalogItem) Clone() CatalogItem {
	out := c
	if c.Variants != nil {
		out.Variants = append([]string(nil), c.Variants...)
	}
	return out
}
