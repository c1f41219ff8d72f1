package services

import (
	"context"
	"sync"

	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/models"
)

// Broadcaster mengirim event ke layar yang terhubung
type Broadcaster interface {
	BroadcastMessage(msg kds.Message)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastMessage(kds.Message) {}

// AppStore memegang objek data aplikasi. Pembaca selalu mendapat salinan,
// penulis mengganti snapshot secara utuh setelah berhasil disimpan.
type AppStore struct {
	mu   sync.RWMutex
	data models.AppData
	repo Repository
	hub  Broadcaster
}

func NewAppStore(repo Repository, hub Broadcaster) *AppStore {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &AppStore{
		data: models.AppData{
			Menu:         []models.CatalogItem{},
			Toppings:     []models.CatalogItem{},
			Drinks:       []models.CatalogItem{},
			Transactions: []models.Order{},
		},
		repo: repo,
		hub:  hub,
	}
}

// Load memuat ulang katalog dan transaksi dari repository
func (s *AppStore) Load(ctx context.Context) error {
	items, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	transactions, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return err
	}

	menu, toppings, drinks := SplitCatalog(items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = models.AppData{
		Menu:         menu,
		Toppings:     toppings,
		Drinks:       drinks,
		Transactions: transactions,
	}
	return nil
}

// ReloadCatalog hanya mengganti bagian katalog
func (s *AppStore) ReloadCatalog(ctx context.Context) error {
	items, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	menu, toppings, drinks := SplitCatalog(items)

	s.mu.Lock()
	next := s.data.Clone()
	next.Menu, next.Toppings, next.Drinks = menu, toppings, drinks
	s.data = next
	s.mu.Unlock()

	s.hub.BroadcastMessage(kds.Message{Event: kds.EventCatalogUpdate, Data: next.CatalogItems()})
	return nil
}

func (s *AppStore) Snapshot() models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

func (s *AppStore) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewCatalog(s.data)
}

func (s *AppStore) Transactions() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneOrders(s.data.Transactions)
}

// UpdateTransactions menjalankan read-modify-write atas daftar transaksi.
// fn menerima salinan; kalau fn gagal atau penyimpanan gagal, snapshot lama tetap dipakai.
func (s *AppStore) UpdateTransactions(ctx context.Context, fn func([]models.Order) ([]models.Order, error)) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(models.CloneOrders(s.data.Transactions))
	if err != nil {
		return nil, err
	}
	if err := s.repo.SyncTransactions(ctx, s.data.Transactions, next); err != nil {
		return nil, err
	}

	data := s.data.Clone()
	data.Transactions = next
	s.data = data
	return models.CloneOrders(next), nil
}

// Publish meneruskan event ke hub
func (s *AppStore) Publish(event string, payload interface{}) {
	s.hub.BroadcastMessage(kds.Message{Event: event, Data: payload})
}
