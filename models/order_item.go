package models

// SelectedTopping adalah topping yang dipilih untuk satu baris pesanan.
// Price adalah harga efektif (0 kalau termasuk paket combo).
type SelectedTopping struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderItem adalah satu baris di keranjang / transaksi.
type OrderItem struct {
	ID               string            `json:"id"`
	Kind             Kind              `json:"kind"`
	Name             string            `json:"name"`
	Price            int64             `json:"price"`
	Category         Category          `json:"category,omitempty"`
	Signature        bool              `json:"signature,omitempty"`
	Quantity         int               `json:"quantity"`
	SelectedVariant  string            `json:"selected_variant,omitempty"`
	SelectedToppings []SelectedTopping `json:"selected_toppings"`
	IsDelivered      bool              `json:"is_delivered"`
}

// LineTotal -> (harga dasar + topping) * quantity
func (i OrderItem) LineTotal() int64 {
	unit := i.Price
	for _, t := range i.SelectedToppings {
		unit += t.Price * int64(t.Quantity)
	}
	return unit * int64(i.Quantity)
}

func (i OrderItem) Clone() OrderItem {
	out := i
	out.SelectedToppings = CloneToppings(i.SelectedToppings)
	return out
}

func CloneToppings(in []SelectedTopping) []SelectedTopping {
	out := make([]SelectedTopping, len(in))
	copy(out, in)
	return out
}
