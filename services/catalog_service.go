package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yeremiapane/warung-pos/models"
)

// CatalogPatch -> field yang diubah saat update item katalog, nil berarti tetap
type CatalogPatch struct {
	Name      *string   `json:"name"`
	Price     *int64    `json:"price"`
	Variants  *[]string `json:"variants"`
	Category  *string   `json:"category"`
	Signature *bool     `json:"signature"`
	Position  *int      `json:"position"`
}

// CatalogService mengelola katalog. Setiap perubahan memuat ulang katalog di AppStore.
type CatalogService struct {
	Repo  Repository
	Store *AppStore
}

func NewCatalogService(repo Repository, store *AppStore) *CatalogService {
	return &CatalogService{Repo: repo, Store: store}
}

func validKind(k models.Kind) bool {
	return k == models.KindMenu || k == models.KindTopping || k == models.KindDrink
}

func validCategory(c models.Category) bool {
	switch c {
	case "", models.CategoryCombo, models.CategoryRice, models.CategoryStandardNoodle,
		models.CategoryDoubleNoodle, models.CategoryOther:
		return true
	}
	return false
}

func validateCatalogItem(item models.CatalogItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: nama wajib diisi", ErrInvalidCatalogItem)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: harga tidak boleh negatif", ErrInvalidCatalogItem)
	}
	if !validKind(item.Kind) {
		return fmt.Errorf("%w: jenis %q tidak dikenal", ErrInvalidCatalogItem, item.Kind)
	}
	if !validCategory(item.Category) {
		return fmt.Errorf("%w: kategori %q tidak dikenal", ErrInvalidCatalogItem, item.Category)
	}
	return nil
}

// List -> menu, topping lalu minuman
func (s *CatalogService) List() models.AppData {
	data := s.Store.Snapshot()
	data.Transactions = nil
	return data
}

func (s *CatalogService) Create(ctx context.Context, item models.CatalogItem) (models.CatalogItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validateCatalogItem(item); err != nil {
		return models.CatalogItem{}, err
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("%s-%s", item.Kind, uuid.NewString()[:8])
	}
	if _, exists := s.Store.Catalog().Lookup(item.ID); exists {
		return models.CatalogItem{}, fmt.Errorf("%w: id %s sudah dipakai", ErrInvalidCatalogItem, item.ID)
	}

	item = PrepareCatalogItem(item)
	if err := s.Repo.SaveCatalogItem(ctx, item); err != nil {
		return models.CatalogItem{}, err
	}
	if err := s.Store.ReloadCatalog(ctx); err != nil {
		return models.CatalogItem{}, err
	}
	return item, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, patch CatalogPatch) (models.CatalogItem, error) {
	item, ok := s.Store.Catalog().Lookup(id)
	if !ok {
		return models.CatalogItem{}, ErrCatalogItemNotFound
	}
	item = item.Clone()

	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
		// kategori dihitung ulang dari nama baru kecuali diisi eksplisit
		item.Category = ""
		item.Signature = false
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Variants != nil {
		item.Variants = *patch.Variants
	}
	if patch.Category != nil {
		item.Category = models.Category(*patch.Category)
	}
	if patch.Signature != nil {
		item.Signature = *patch.Signature
	}
	if patch.Position != nil {
		item.Position = *patch.Position
	}

	if err := validateCatalogItem(item); err != nil {
		return models.CatalogItem{}, err
	}
	item = PrepareCatalogItem(item)
	if err := s.Repo.SaveCatalogItem(ctx, item); err != nil {
		return models.CatalogItem{}, err
	}
	if err := s.Store.ReloadCatalog(ctx); err != nil {
		return models.CatalogItem{}, err
	}
	return item, nil
}

// Delete menghapus item katalog. Transaksi lama tetap menyimpan salinan datanya.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteCatalogItem(ctx, id); err != nil {
		return err
	}
	return s.Store.ReloadCatalog(ctx)
}
