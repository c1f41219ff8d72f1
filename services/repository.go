package services

import (
	"context"
	"fmt"
	"reflect"

	"github.com/yeremiapane/warung-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository menyimpan dan memuat ulang objek data aplikasi
type Repository interface {
	LoadCatalog(ctx context.Context) ([]models.CatalogItem, error)
	SaveCatalogItem(ctx context.Context, item models.CatalogItem) error
	DeleteCatalogItem(ctx context.Context, id string) error
	LoadTransactions(ctx context.Context) ([]models.Order, error)
	// SyncTransactions menyimpan perubahan dari prev ke next. prev adalah isi yang terakhir disimpan.
	SyncTransactions(ctx context.Context, prev, next []models.Order) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) LoadCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := r.DB.WithContext(ctx).Order("position asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return items, nil
}

func (r *GormRepository) SaveCatalogItem(ctx context.Context, item models.CatalogItem) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&item).Error
	if err != nil {
		return fmt.Errorf("save catalog item %s: %w", item.ID, err)
	}
	return nil
}

func (r *GormRepository) DeleteCatalogItem(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CatalogItem{})
	if res.Error != nil {
		return fmt.Errorf("delete catalog item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCatalogItemNotFound
	}
	return nil
}

func (r *GormRepository) LoadTransactions(ctx context.Context) ([]models.Order, error) {
	var records []models.TransactionRecord
	if err := r.DB.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	orders := make([]models.Order, len(records))
	for i, rec := range records {
		orders[i] = rec.ToOrder()
	}
	return orders, nil
}

// Batas jumlah baris per statement, supaya jumlah bind variable tetap di bawah batas
// sqlite (32766) dan mysql (65535) berapa pun panjang riwayatnya.
const transactionBatchSize = 500

// transactionColumns -> kolom yang ditulis ulang saat transaksi lama berubah. Position tidak ikut.
var transactionColumns = []string{
	"customer_name", "payment_status", "payment_method", "items",
	"total", "business_date", "created_at", "updated_at",
}

// SyncTransactions menyimpan selisih antara prev (isi tabel sekarang) dan next dalam satu transaksi DB:
// id yang hilang dihapus, transaksi baru disisipkan dan transaksi yang berubah di-update.
// Transaksi yang tidak berubah tidak disentuh.
func (r *GormRepository) SyncTransactions(ctx context.Context, prev, next []models.Order) error {
	diff := diffTransactions(prev, next)
	if diff.empty() {
		return nil
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ids := range chunkIDs(diff.removed, transactionBatchSize) {
			if err := tx.Where("id IN ?", ids).Delete(&models.TransactionRecord{}).Error; err != nil {
				return fmt.Errorf("delete removed transactions: %w", err)
			}
		}

		if diff.reordered {
			// urutan lama tidak bisa dipertahankan, tulis ulang posisi semua baris
			recs := make([]models.TransactionRecord, len(next))
			for i, t := range next {
				recs[i] = models.NewTransactionRecord(t, i)
			}
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				CreateInBatches(&recs, transactionBatchSize).Error
			if err != nil {
				return fmt.Errorf("rewrite transactions: %w", err)
			}
			return nil
		}

		if len(diff.added) > 0 {
			// transaksi baru selalu di depan list, jadi posisinya di bawah posisi terkecil yang ada
			var top int
			err := tx.Model(&models.TransactionRecord{}).
				Select("COALESCE(MIN(position), 0)").
				Scan(&top).Error
			if err != nil {
				return fmt.Errorf("read first position: %w", err)
			}
			recs := make([]models.TransactionRecord, len(diff.added))
			for i, t := range diff.added {
				recs[i] = models.NewTransactionRecord(t, top-len(diff.added)+i)
			}
			if err := tx.CreateInBatches(&recs, transactionBatchSize).Error; err != nil {
				return fmt.Errorf("insert transactions: %w", err)
			}
		}

		if len(diff.changed) > 0 {
			recs := make([]models.TransactionRecord, len(diff.changed))
			for i, t := range diff.changed {
				recs[i] = models.NewTransactionRecord(t, 0)
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(transactionColumns),
			}).CreateInBatches(&recs, transactionBatchSize).Error
			if err != nil {
				return fmt.Errorf("update transactions: %w", err)
			}
		}
		return nil
	})
}

type transactionDiff struct {
	removed []string
	added   []models.Order // urut seperti di next (terbaru dulu)
	changed []models.Order
	// reordered true kalau transaksi baru tidak semuanya di depan atau urutan transaksi lama berubah
	reordered bool
}

func (d transactionDiff) empty() bool {
	return len(d.removed) == 0 && len(d.added) == 0 && len(d.changed) == 0 && !d.reordered
}

func diffTransactions(prev, next []models.Order) transactionDiff {
	var d transactionDiff

	prevIdx := make(map[string]int, len(prev))
	for i, t := range prev {
		prevIdx[t.ID] = i
	}
	nextIDs := make(map[string]struct{}, len(next))
	for _, t := range next {
		nextIDs[t.ID] = struct{}{}
	}
	for _, t := range prev {
		if _, ok := nextIDs[t.ID]; !ok {
			d.removed = append(d.removed, t.ID)
		}
	}

	lastKept := -1
	seenKept := false
	for _, t := range next {
		i, ok := prevIdx[t.ID]
		if !ok {
			if seenKept {
				d.reordered = true
			}
			d.added = append(d.added, t)
			continue
		}
		seenKept = true
		if i < lastKept {
			d.reordered = true
		}
		lastKept = i
		// Clone menyamakan slice nil dan kosong sebelum dibandingkan
		if !reflect.DeepEqual(prev[i].Clone(), t.Clone()) {
			d.changed = append(d.changed, t)
		}
	}
	return d
}

func chunkIDs(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
