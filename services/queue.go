package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/utils"
)

// Nilai filter "semua"
const FilterAll = "all"

type DeliveryFilter string

const (
	DeliveryAll       DeliveryFilter = FilterAll
	DeliveryDelivered DeliveryFilter = "delivered"
	DeliveryPending   DeliveryFilter = "pending"
)

// QueueFilter -> filter layar antrian. Field kosong atau "all" berarti tidak difilter.
type QueueFilter struct {
	Date      string         `form:"date"`
	Status    string         `form:"status"`
	Method    string         `form:"method"`
	Name      string         `form:"name"`
	Delivered DeliveryFilter `form:"delivered"`
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

func (f QueueFilter) match(t models.Order) bool {
	if active(f.Date) && t.Date() != f.Date {
		return false
	}
	if active(f.Status) && string(t.Payment.Status) != f.Status {
		return false
	}
	if active(f.Method) && string(t.Payment.Method) != f.Method {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(t.CustomerName), strings.ToLower(f.Name)) {
		return false
	}
	switch f.Delivered {
	case DeliveryDelivered:
		return t.AllDelivered()
	case DeliveryPending:
		return !t.AllDelivered()
	}
	return true
}

func createdUnix(t models.Order) int64 {
	if t.CreatedAt == nil {
		return 0
	}
	return t.CreatedAt.UnixMilli()
}

// FilterTransactions menyaring lalu mengurutkan dari yang terbaru
func FilterTransactions(transactions []models.Order, f QueueFilter) []models.Order {
	out := make([]models.Order, 0, len(transactions))
	for _, t := range transactions {
		if f.match(t) {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return createdUnix(out[i]) > createdUnix(out[j])
	})
	return out
}

// SummaryLine adalah satu baris ringkasan masak
type SummaryLine struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Main     bool   `json:"main"`
}

type KitchenSummary []SummaryLine

// Quantity -> jumlah untuk key tertentu, 0 kalau tidak ada
func (s KitchenSummary) Quantity(key string) int {
	for _, line := range s {
		if line.Key == key {
			return line.Quantity
		}
	}
	return 0
}

// BuildKitchenSummary mengakumulasi menu signature dan topping per transaksi
func BuildKitchenSummary(items []models.OrderItem) KitchenSummary {
	summary := KitchenSummary{}
	index := map[string]int{}

	add := func(key string, qty int, main bool) {
		if i, ok := index[key]; ok {
			summary[i].Quantity += qty
			return
		}
		index[key] = len(summary)
		summary = append(summary, SummaryLine{
			Key:      key,
			Label:    strings.TrimPrefix(key, "TOTAL "),
			Quantity: qty,
			Main:     main,
		})
	}

	for _, item := range items {
		if item.Signature {
			add(SignatureSummaryKey, item.Quantity, true)
		}
		for _, top := range item.SelectedToppings {
			add(top.Name, top.Quantity, false)
		}
	}
	return summary
}

// TimeElapsed -> teks "x menit lalu" untuk kartu antrian
func TimeElapsed(created *time.Time, now time.Time) string {
	if created == nil {
		return ""
	}
	minutes := int(now.Sub(*created).Minutes())
	switch {
	case minutes < 1:
		return "Baru saja"
	case minutes < 60:
		return fmt.Sprintf("%d menit lalu", minutes)
	}
	return fmt.Sprintf("%d jam %d menit lalu", minutes/60, minutes%60)
}

// QueueEntry adalah satu kartu di layar antrian dapur
type QueueEntry struct {
	QueueNumber    int            `json:"queue_number"`
	Transaction    models.Order   `json:"transaction"`
	AllDelivered   bool           `json:"all_delivered"`
	KitchenSummary KitchenSummary `json:"kitchen_summary,omitempty"`
	Time           string         `json:"time"`
	TimeElapsed    string         `json:"time_elapsed"`
	TotalText      string         `json:"total_text"`
}

// BuildQueue menyusun kartu antrian; nomor antrian = jumlah hasil filter - index,
// jadi pesanan terlama yang tampil selalu #1. Jam kartu ditampilkan di zona now.
func BuildQueue(transactions []models.Order, f QueueFilter, now time.Time) []QueueEntry {
	filtered := FilterTransactions(transactions, f)
	entries := make([]QueueEntry, len(filtered))
	for i, t := range filtered {
		allDelivered := t.AllDelivered()
		entry := QueueEntry{
			QueueNumber:  len(filtered) - i,
			Transaction:  t,
			AllDelivered: allDelivered,
			Time:         utils.FormatTime(t.CreatedAt, now.Location()),
			TimeElapsed:  TimeElapsed(t.CreatedAt, now),
			TotalText:    utils.FormatCurrencyIDR(t.Total),
		}
		if !allDelivered {
			if summary := BuildKitchenSummary(t.Items); len(summary) > 0 {
				entry.KitchenSummary = summary
			}
		}
		entries[i] = entry
	}
	return entries
}
