package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yeremiapane/warung-pos/models"
)

type BuilderStep string

const (
	StepEggChoice    BuilderStep = "egg_choice"
	StepDoubleType   BuilderStep = "double_type"
	StepDoubleFlavor BuilderStep = "double_flavor"
	StepVariant      BuilderStep = "variant"
	StepToppings     BuilderStep = "toppings"
)

// Builder adalah alur kustomisasi satu item menu: varian, topping, lalu jumlah.
type Builder struct {
	Item       models.CatalogItem       `json:"item"`
	EditIndex  int                      `json:"edit_index"`
	Step       BuilderStep              `json:"step"`
	DoubleType string                   `json:"double_type,omitempty"`
	Variant    string                   `json:"variant,omitempty"`
	Toppings   []models.SelectedTopping `json:"toppings"`
	Quantity   int                      `json:"quantity"`
}

// ToppingOption adalah satu kartu topping di langkah topping
type ToppingOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// BuilderView adalah keadaan builder yang dikirim ke layar kasir
type BuilderView struct {
	Step      BuilderStep     `json:"step"`
	Title     string          `json:"title"`
	Options   []string        `json:"options,omitempty"`
	Toppings  []ToppingOption `json:"toppings,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice int64           `json:"unit_price"`
	Subtotal  int64           `json:"subtotal"`
	Editing   bool            `json:"editing"`
}

func firstStep(item models.CatalogItem, variant string) BuilderStep {
	switch {
	case item.Category == models.CategoryCombo:
		return StepEggChoice
	case item.Category == models.CategoryDoubleNoodle:
		if variant != "" {
			return StepToppings
		}
		return StepDoubleType
	case len(item.Variants) > 0 && variant == "":
		return StepVariant
	default:
		return StepToppings
	}
}

// OpenBuilder membuka builder untuk item baru
func OpenBuilder(item models.CatalogItem) *Builder {
	return &Builder{
		Item:      item,
		EditIndex: NoEdit,
		Step:      firstStep(item, ""),
		Toppings:  []models.SelectedTopping{},
		Quantity:  1,
	}
}

// OpenEditBuilder membuka builder yang sudah terisi dari baris keranjang
func OpenEditBuilder(item models.CatalogItem, index int, line models.OrderItem) *Builder {
	qty := line.Quantity
	if qty < 1 {
		qty = 1
	}
	return &Builder{
		Item:      item,
		EditIndex: index,
		Step:      firstStep(item, line.SelectedVariant),
		Variant:   line.SelectedVariant,
		Toppings:  models.CloneToppings(line.SelectedToppings),
		Quantity:  qty,
	}
}

// Options -> pilihan yang tersedia di langkah sekarang
func (b *Builder) Options(cat *Catalog) []string {
	switch b.Step {
	case StepEggChoice:
		return ComboEggChoices
	case StepDoubleType:
		return DoubleNoodleTypes
	case StepDoubleFlavor:
		return cat.DoubleNoodleFlavors(b.DoubleType)
	case StepVariant:
		return b.Item.Variants
	}
	return nil
}

// Choose menjalankan pilihan untuk langkah sekarang. Untuk combo, pilihan telur
// langsung menghasilkan CartLine yang siap di-commit.
func (b *Builder) Choose(choice string, cat *Catalog) (*CartLine, error) {
	if !slices.Contains(b.Options(cat), choice) {
		return nil, ErrInvalidChoice
	}

	switch b.Step {
	case StepEggChoice:
		line := b.comboLine(choice, cat)
		return &line, nil
	case StepDoubleType:
		b.DoubleType = choice
		b.Step = StepDoubleFlavor
	case StepDoubleFlavor:
		b.Variant = fmt.Sprintf("%s - %s", strings.TrimPrefix(b.DoubleType, "Mie "), choice)
		b.Step = StepToppings
	case StepVariant:
		b.Variant = choice
		b.Step = StepToppings
	default:
		return nil, ErrInvalidChoice
	}
	return nil, nil
}

func (b *Builder) comboLine(egg string, cat *Catalog) CartLine {
	bundle := make([]models.SelectedTopping, 0, len(ComboIncludedToppings)+1)
	for _, name := range append(slices.Clone(ComboIncludedToppings), egg) {
		t, ok := cat.ToppingByName(name)
		if !ok {
			continue
		}
		bundle = append(bundle, models.SelectedTopping{ID: t.ID, Name: t.Name, Price: 0, Quantity: 1})
	}
	return CartLine{
		Item:      b.Item,
		Toppings:  bundle,
		Quantity:  b.Quantity,
		EditIndex: b.EditIndex,
	}
}

func (b *Builder) toppingIndex(id string) int {
	for i, t := range b.Toppings {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) applyTopping(topping models.CatalogItem, idx, qty int) error {
	if b.Step != StepToppings {
		return ErrBuilderIncomplete
	}
	switch {
	case qty <= 0:
		if idx > -1 {
			b.Toppings = append(b.Toppings[:idx], b.Toppings[idx+1:]...)
		}
	case idx > -1:
		b.Toppings[idx].Quantity = qty
	default:
		b.Toppings = append(b.Toppings, models.SelectedTopping{
			ID:       topping.ID,
			Name:     topping.Name,
			Price:    topping.Price,
			Quantity: qty,
		})
	}
	return nil
}

// AdjustTopping menambah/mengurangi topping; topping baru hanya masuk kalau delta positif
func (b *Builder) AdjustTopping(topping models.CatalogItem, delta int) error {
	idx := b.toppingIndex(topping.ID)
	qty := delta
	if idx > -1 {
		qty = b.Toppings[idx].Quantity + delta
	} else if delta < 0 {
		qty = 0
	}
	return b.applyTopping(topping, idx, qty)
}

// SetTopping mengisi jumlah topping secara langsung; 0 atau kurang menghapus topping
func (b *Builder) SetTopping(topping models.CatalogItem, qty int) error {
	return b.applyTopping(topping, b.toppingIndex(topping.ID), qty)
}

func (b *Builder) SetQuantity(qty int) {
	if qty < 1 {
		qty = 1
	}
	b.Quantity = qty
}

func (b *Builder) AdjustQuantity(delta int) {
	b.SetQuantity(b.Quantity + delta)
}

// Finish menghasilkan CartLine dari builder yang sudah sampai langkah topping
func (b *Builder) Finish() (CartLine, error) {
	if b.Step != StepToppings {
		return CartLine{}, ErrBuilderIncomplete
	}
	return CartLine{
		Item:      b.Item,
		Variant:   b.Variant,
		Toppings:  models.CloneToppings(b.Toppings),
		Quantity:  b.Quantity,
		EditIndex: b.EditIndex,
	}, nil
}

func (b *Builder) title() string {
	switch b.Step {
	case StepEggChoice:
		return "Pilih Jenis Telur (Harga Paket Termasuk)"
	case StepDoubleType:
		return "Pilih Jenis Mie"
	case StepDoubleFlavor:
		return "Pilih Rasa " + b.DoubleType
	case StepVariant:
		return "Pilih Varian " + b.Item.Name
	}
	return "Custom: " + b.Item.Name
}

func (b *Builder) View(cat *Catalog) BuilderView {
	view := BuilderView{
		Step:     b.Step,
		Title:    b.title(),
		Options:  b.Options(cat),
		Variant:  b.Variant,
		Quantity: b.Quantity,
		Editing:  b.EditIndex != NoEdit,
	}

	if b.Step == StepToppings {
		for _, t := range cat.Toppings() {
			opt := ToppingOption{ID: t.ID, Name: t.Name, Price: t.Price}
			if idx := b.toppingIndex(t.ID); idx > -1 {
				opt.Quantity = b.Toppings[idx].Quantity
			}
			view.Toppings = append(view.Toppings, opt)
		}
	}

	line := models.OrderItem{Price: b.Item.Price, Quantity: 1, SelectedToppings: b.Toppings}
	view.UnitPrice = line.LineTotal()
	view.Subtotal = view.UnitPrice * int64(b.Quantity)
	return view
}
