package models

import (
	"time"
)

// DateLayout adalah format tanggal usaha (business date)
const DateLayout = "2006-01-02"

// ClosedDay menandai tanggal usaha yang sudah ditutup. Pesanan baru untuk tanggal ini ditolak.
type ClosedDay struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessDate string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"business_date"`
	ClosedBy     string    `gorm:"type:varchar(100)" json:"closed_by"`
	OrderCount   int       `gorm:"not null;default:0" json:"order_count"`
	Revenue      int64     `gorm:"not null;default:0" json:"revenue"`
	ClosedAt     time.Time `gorm:"not null" json:"closed_at"`
}
