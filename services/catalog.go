package services

import (
	"sort"
	"strings"

	"github.com/yeremiapane/warung-pos/models"
)

// Komponen paket combo (harga 0, sudah termasuk harga menu)
var ComboIncludedToppings = []string{"Sosis", "Pangsit", "Bakso 2 pcs", "Tahu"}

var ComboEggChoices = []string{"Telur Dadar", "Telur Mata Sapi"}

// Jenis mie untuk Mie Double, rasa diambil dari menu referensi dengan nama yang sama
var DoubleNoodleTypes = []string{"Mie Goreng", "Mie Kuah"}

var doubleNoodleFallbackFlavors = map[string][]string{
	"Mie Goreng": {"Original", "Aceh"},
	"Mie Kuah":   {"Soto", "Ayam Bawang"},
}

const (
	SignatureSummaryKey = "TOTAL MIE BANGLADESH"
	signaturePattern    = "bangladesh"
)

// Classify menentukan kategori menu dari namanya. Dipanggil sekali saat katalog dimuat.
func Classify(name string) models.Category {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "complete"):
		return models.CategoryCombo
	case strings.Contains(lower, "nasi"):
		return models.CategoryRice
	case strings.Contains(lower, "mie double"):
		return models.CategoryDoubleNoodle
	case strings.Contains(lower, "mie"):
		return models.CategoryStandardNoodle
	default:
		return models.CategoryOther
	}
}

func IsSignature(name string) bool {
	return strings.Contains(strings.ToLower(name), signaturePattern)
}

// PrepareCatalogItem mengisi kategori & flag signature untuk item menu.
// Kategori yang sudah diisi eksplisit tidak ditimpa.
func PrepareCatalogItem(item models.CatalogItem) models.CatalogItem {
	if item.Kind != models.KindMenu {
		item.Category = ""
		item.Variants = nil
		item.Signature = false
		return item
	}
	if item.Category == "" {
		item.Category = Classify(item.Name)
	}
	if !item.Signature {
		item.Signature = IsSignature(item.Name)
	}
	return item
}

// SplitCatalog membagi item katalog ke menu / topping / minuman sesuai Position
func SplitCatalog(items []models.CatalogItem) (menu, toppings, drinks []models.CatalogItem) {
	sorted := make([]models.CatalogItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	menu, toppings, drinks = []models.CatalogItem{}, []models.CatalogItem{}, []models.CatalogItem{}
	for _, item := range sorted {
		item = PrepareCatalogItem(item)
		switch item.Kind {
		case models.KindMenu:
			menu = append(menu, item)
		case models.KindTopping:
			toppings = append(toppings, item)
		case models.KindDrink:
			drinks = append(drinks, item)
		}
	}
	return menu, toppings, drinks
}

// Catalog adalah indeks baca-saja atas katalog di AppData
type Catalog struct {
	byID     map[string]models.CatalogItem
	menu     []models.CatalogItem
	toppings []models.CatalogItem
}

func NewCatalog(data models.AppData) *Catalog {
	c := &Catalog{
		byID:     make(map[string]models.CatalogItem),
		menu:     data.Menu,
		toppings: data.Toppings,
	}
	for _, item := range data.CatalogItems() {
		c.byID[item.ID] = item
	}
	return c
}

func (c *Catalog) Lookup(id string) (models.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

func (c *Catalog) IsMenu(id string) bool {
	item, ok := c.byID[id]
	return ok && item.Kind == models.KindMenu
}

func (c *Catalog) Topping(id string) (models.CatalogItem, bool) {
	for _, t := range c.toppings {
		if t.ID == id {
			return t, true
		}
	}
	return models.CatalogItem{}, false
}

func (c *Catalog) ToppingByName(name string) (models.CatalogItem, bool) {
	for _, t := range c.toppings {
		if t.Name == name {
			return t, true
		}
	}
	return models.CatalogItem{}, false
}

func (c *Catalog) Toppings() []models.CatalogItem {
	return c.toppings
}

// MenuByName mencari menu referensi (case-insensitive), dipakai untuk rasa Mie Double
func (c *Catalog) MenuByName(name string) (models.CatalogItem, bool) {
	for _, m := range c.menu {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return models.CatalogItem{}, false
}

// DoubleNoodleFlavors -> varian menu referensi, atau daftar bawaan kalau menu tidak ada
func (c *Catalog) DoubleNoodleFlavors(noodleType string) []string {
	if ref, ok := c.MenuByName(noodleType); ok && len(ref.Variants) > 0 {
		return ref.Variants
	}
	return doubleNoodleFallbackFlavors[noodleType]
}
