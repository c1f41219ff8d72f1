package models

import (
	"time"
)

// Order adalah keranjang yang sedang dibangun kasir. Setelah diproses, Order yang sama
// disimpan sebagai transaksi di AppData.Transactions.
type Order struct {
	ID           string      `json:"id"`
	Items        []OrderItem `json:"items"`
	CustomerName string      `json:"customer_name"`
	Payment      Payment     `json:"payment"`
	CreatedAt    *time.Time  `json:"created_at"`
	BusinessDate string      `json:"business_date,omitempty"`
	Total        int64       `json:"total"`
}

// NewOrder -> keranjang kosong (belum punya ID dan waktu dibuat)
func NewOrder() Order {
	return Order{
		Items:   []OrderItem{},
		Payment: Payment{Status: PaymentUnpaid, Method: MethodCash},
	}
}

// CalculateTotal menjumlahkan total semua baris
func CalculateTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// AllDelivered true kalau semua baris sudah diantar (order tanpa item dianggap selesai)
func (o Order) AllDelivered() bool {
	for _, item := range o.Items {
		if !item.IsDelivered {
			return false
		}
	}
	return true
}

// Date -> tanggal usaha order; data lama tanpa BusinessDate memakai tanggal CreatedAt
func (o Order) Date() string {
	if o.BusinessDate != "" {
		return o.BusinessDate
	}
	if o.CreatedAt == nil {
		return ""
	}
	return o.CreatedAt.Format(DateLayout)
}

// Clone membuat salinan penuh, tidak ada slice atau pointer yang dibagi
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		out.Items[i] = item.Clone()
	}
	if o.CreatedAt != nil {
		created := *o.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func CloneOrders(in []Order) []Order {
	out := make([]Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
