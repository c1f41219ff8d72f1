package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeremiapane/warung-pos/models"
)

// DayState adalah tanggal usaha dan status tutup hari, dihitung di luar core dan diteruskan ke sini.
type DayState struct {
	Date   string
	Locked bool
	// Location -> zona waktu usaha; nil berarti memakai zona now apa adanya
	Location *time.Location
}

// NoEdit menandakan commit menambah baris, bukan mengganti baris tertentu
const NoEdit = -1

// CartLine adalah satu permintaan commit ke keranjang
type CartLine struct {
	Item      models.CatalogItem
	Variant   string
	Toppings  []models.SelectedTopping
	Quantity  int
	EditIndex int
}

// NewTransactionID -> TRX-<unix millis>
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("TRX-%d", now.UnixMilli())
}

// BusinessTimestamp menggabungkan tanggal usaha dengan jam dinding now, di zona now
func BusinessTimestamp(businessDate string, now time.Time) time.Time {
	day, err := time.ParseInLocation(models.DateLayout, businessDate, now.Location())
	if err != nil {
		return now
	}
	return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
}

// ToppingKey -> "id:qty:price" diurutkan berdasarkan id, dipakai untuk mencocokkan baris yang sama
func ToppingKey(toppings []models.SelectedTopping) string {
	sorted := models.CloneToppings(toppings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	parts := make([]string, len(sorted))
	for i, t := range sorted {
		parts[i] = fmt.Sprintf("%s:%d:%d", t.ID, t.Quantity, t.Price)
	}
	return strings.Join(parts, ",")
}

func sameConfiguration(item models.OrderItem, catalogID, variant, toppingKey string) bool {
	return item.ID == catalogID &&
		item.SelectedVariant == variant &&
		ToppingKey(item.SelectedToppings) == toppingKey
}

func newOrderItem(line CartLine) models.OrderItem {
	return models.OrderItem{
		ID:               line.Item.ID,
		Kind:             line.Item.Kind,
		Name:             line.Item.Name,
		Price:            line.Item.Price,
		Category:         line.Item.Category,
		Signature:        line.Item.Signature,
		Quantity:         line.Quantity,
		SelectedVariant:  line.Variant,
		SelectedToppings: models.CloneToppings(line.Toppings),
		IsDelivered:      false,
	}
}

// AddOrUpdateItem menambah atau mengganti baris keranjang dan menghitung ulang total.
// Order input tidak pernah diubah; hasilnya salinan baru.
func AddOrUpdateItem(order models.Order, line CartLine, day DayState, now time.Time) (models.Order, error) {
	out := order.Clone()

	if out.ID == "" && len(out.Items) == 0 {
		if day.Locked {
			return order, ErrDayClosed
		}
		local := now
		if day.Location != nil {
			local = now.In(day.Location)
		}
		created := BusinessTimestamp(day.Date, local)
		out.ID = NewTransactionID(now)
		out.CreatedAt = &created
		out.BusinessDate = day.Date
	}

	if line.Quantity < 1 {
		line.Quantity = 1
	}
	newItem := newOrderItem(line)

	if line.EditIndex >= 0 && line.EditIndex < len(out.Items) {
		// edit baris: status antar tetap mengikuti baris lama
		newItem.IsDelivered = out.Items[line.EditIndex].IsDelivered
		out.Items[line.EditIndex] = newItem
	} else {
		key := ToppingKey(line.Toppings)
		merged := false
		for i := range out.Items {
			// baris yang sudah diantar tidak pernah digabung, tambahan harus muncul sebagai baris baru
			if out.Items[i].IsDelivered || !sameConfiguration(out.Items[i], line.Item.ID, line.Variant, key) {
				continue
			}
			out.Items[i].Quantity += line.Quantity
			merged = true
			break
		}
		if !merged {
			out.Items = append(out.Items, newItem)
		}
	}

	out.Total = models.CalculateTotal(out.Items)
	return out, nil
}

// SetItemQuantity mengganti quantity satu baris; qty <= 0 menghapus baris.
func SetItemQuantity(order models.Order, index, qty int) (models.Order, error) {
	if index < 0 || index >= len(order.Items) {
		return order, ErrLineNotFound
	}
	out := order.Clone()
	if qty <= 0 {
		out.Items = append(out.Items[:index], out.Items[index+1:]...)
	} else {
		out.Items[index].Quantity = qty
	}
	out.Total = models.CalculateTotal(out.Items)
	return out, nil
}

// SetToppingQuantity menggeser quantity satu topping sebanyak delta; hasil <= 0 menghapus topping itu.
func SetToppingQuantity(order models.Order, itemIndex, toppingIndex, delta int) (models.Order, error) {
	if itemIndex < 0 || itemIndex >= len(order.Items) {
		return order, ErrLineNotFound
	}
	if toppingIndex < 0 || toppingIndex >= len(order.Items[itemIndex].SelectedToppings) {
		return order, ErrToppingNotFound
	}

	out := order.Clone()
	toppings := out.Items[itemIndex].SelectedToppings
	newQty := toppings[toppingIndex].Quantity + delta
	if newQty <= 0 {
		toppings = append(toppings[:toppingIndex], toppings[toppingIndex+1:]...)
	} else {
		toppings[toppingIndex].Quantity = newQty
	}
	out.Items[itemIndex].SelectedToppings = toppings
	out.Total = models.CalculateTotal(out.Items)
	return out, nil
}

func SetCustomerName(order models.Order, name string) models.Order {
	out := order.Clone()
	out.CustomerName = name
	return out
}

func SetPayment(order models.Order, status models.PaymentStatus, method models.PaymentMethod) (models.Order, error) {
	out := order.Clone()
	if status != "" {
		if !status.Valid() {
			return order, ErrInvalidPayment
		}
		out.Payment.Status = status
	}
	if method != "" {
		if !method.Valid() {
			return order, ErrInvalidPayment
		}
		out.Payment.Method = method
	}
	return out, nil
}
