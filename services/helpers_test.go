package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/models"
)

func fixtureCatalogItems() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "m-complete", Kind: models.KindMenu, Name: "Mie Bangladesh Complete", Price: 30000, Position: 1},
		{ID: "m-bangladesh", Kind: models.KindMenu, Name: "Mie Bangladesh", Price: 18000, Position: 2},
		{ID: "m-goreng", Kind: models.KindMenu, Name: "Mie Goreng", Price: 12000, Variants: []string{"Original", "Aceh", "Geprek"}, Position: 3},
		{ID: "m-kuah", Kind: models.KindMenu, Name: "Mie Kuah", Price: 12000, Position: 4},
		{ID: "m-double", Kind: models.KindMenu, Name: "Mie Double", Price: 18000, Position: 5},
		{ID: "m-nasi", Kind: models.KindMenu, Name: "Nasi Ayam Panggang", Price: 20000, Position: 6},
		{ID: "m-pisang", Kind: models.KindMenu, Name: "Pisang Goreng", Price: 8000, Position: 7},

		{ID: "t-sosis", Kind: models.KindTopping, Name: "Sosis", Price: 3000, Position: 10},
		{ID: "t-pangsit", Kind: models.KindTopping, Name: "Pangsit", Price: 2000, Position: 11},
		{ID: "t-bakso", Kind: models.KindTopping, Name: "Bakso 2 pcs", Price: 4000, Position: 12},
		{ID: "t-tahu", Kind: models.KindTopping, Name: "Tahu", Price: 2000, Position: 13},
		{ID: "t-dadar", Kind: models.KindTopping, Name: "Telur Dadar", Price: 4000, Position: 14},
		{ID: "t-mata-sapi", Kind: models.KindTopping, Name: "Telur Mata Sapi", Price: 4000, Position: 15},
		{ID: "t-keju", Kind: models.KindTopping, Name: "Keju", Price: 3000, Position: 16},

		{ID: "d-teh", Kind: models.KindDrink, Name: "Es Teh Manis", Price: 4000, Position: 20},
	}
}

func fixtureData() models.AppData {
	menu, toppings, drinks := SplitCatalog(fixtureCatalogItems())
	return models.AppData{Menu: menu, Toppings: toppings, Drinks: drinks, Transactions: []models.Order{}}
}

func fixtureCatalog() *Catalog {
	return NewCatalog(fixtureData())
}

func mustItem(cat *Catalog, id string) models.CatalogItem {
	item, ok := cat.Lookup(id)
	if !ok {
		panic("fixture item not found: " + id)
	}
	return item
}

var fixedNow = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

var openDay = DayState{Date: "2026-03-14"}

func simpleLine(item models.CatalogItem) CartLine {
	return CartLine{Item: item, Quantity: 1, EditIndex: NoEdit}
}

func at(t time.Time) *time.Time {
	return &t
}

// memRepo adalah Repository di memori untuk test AppStore dan service
type memRepo struct {
	mu           sync.Mutex
	catalog      []models.CatalogItem
	transactions []models.Order
	replaceErr   error
	replaces     int
}

func newMemRepo() *memRepo {
	return &memRepo{catalog: fixtureCatalogItems()}
}

func (r *memRepo) LoadCatalog(context.Context) ([]models.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CatalogItem, len(r.catalog))
	copy(out, r.catalog)
	return out, nil
}

func (r *memRepo) SaveCatalogItem(_ context.Context, item models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.catalog {
		if c.ID == item.ID {
			r.catalog[i] = item
			return nil
		}
	}
	r.catalog = append(r.catalog, item)
	return nil
}

func (r *memRepo) DeleteCatalogItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.catalog {
		if c.ID == id {
			r.catalog = append(r.catalog[:i], r.catalog[i+1:]...)
			return nil
		}
	}
	return ErrCatalogItemNotFound
}

func (r *memRepo) LoadTransactions(context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.CloneOrders(r.transactions), nil
}

func (r *memRepo) SyncTransactions(_ context.Context, _, txs []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaces++
	r.transactions = models.CloneOrders(txs)
	return nil
}

// recordingHub menyimpan semua event yang di-broadcast
type recordingHub struct {
	mu   sync.Mutex
	msgs []kds.Message
}

func (h *recordingHub) BroadcastMessage(msg kds.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
}

func (h *recordingHub) events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.msgs))
	for i, m := range h.msgs {
		out[i] = m.Event
	}
	return out
}

// fixedDays selalu mengembalikan state yang sama
type fixedDays struct {
	mu    sync.Mutex
	state DayState
}

func (d *fixedDays) State(context.Context, time.Time) (DayState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state, nil
}

func (d *fixedDays) lock() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Locked = true
}

func newLoadedStore(repo *memRepo, hub Broadcaster) *AppStore {
	store := NewAppStore(repo, hub)
	if err := store.Load(context.Background()); err != nil {
		panic(err)
	}
	return store
}

func timeMillis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
