package models

import "time"

// TransactionRecord adalah bentuk baris tabel transactions.
// Items disimpan sebagai JSON, Position menjaga urutan list di memori.
type TransactionRecord struct {
	ID            string        `gorm:"primaryKey;type:varchar(64)"`
	Position      int           `gorm:"not null;index"`
	CustomerName  string        `gorm:"type:varchar(255)"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'cash'"`
	Items         []OrderItem   `gorm:"serializer:json"`
	Total         int64         `gorm:"not null;default:0"`
	BusinessDate  string        `gorm:"type:varchar(10);index"`
	CreatedAt     *time.Time    `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time
}

func (TransactionRecord) TableName() string {
	return "transactions"
}

func NewTransactionRecord(o Order, position int) TransactionRecord {
	rec := TransactionRecord{
		ID:            o.ID,
		Position:      position,
		CustomerName:  o.CustomerName,
		PaymentStatus: o.Payment.Status,
		PaymentMethod: o.Payment.Method,
		Items:         o.Clone().Items,
		Total:         o.Total,
		BusinessDate:  o.Date(),
	}
	if o.CreatedAt != nil {
		created := *o.CreatedAt
		rec.CreatedAt = &created
	}
	return rec
}

func (r TransactionRecord) ToOrder() Order {
	o := Order{
		ID:           r.ID,
		Items:        r.Items,
		CustomerName: r.CustomerName,
		Payment:      Payment{Status: r.PaymentStatus, Method: r.PaymentMethod},
		Total:        r.Total,
		BusinessDate: r.BusinessDate,
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	if r.CreatedAt != nil {
		created := *r.CreatedAt
		o.CreatedAt = &created
	}
	return o
}
