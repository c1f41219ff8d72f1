package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/utils"
)

// DayStateProvider memberi tanggal usaha dan status tutup hari untuk waktu tertentu
type DayStateProvider interface {
	State(ctx context.Context, now time.Time) (DayState, error)
}

// CashierSession adalah satu layar kasir: keranjang yang sedang dibangun dan builder yang terbuka
type CashierSession struct {
	ID        string
	Order     models.Order
	Builder   *Builder
	UpdatedAt time.Time
}

// SessionView adalah keadaan sesi yang dikirim ke layar kasir
type SessionView struct {
	ID         string       `json:"id"`
	Order      models.Order `json:"order"`
	TotalText  string       `json:"total_text"`
	Builder    *BuilderView `json:"builder,omitempty"`
	Editing    bool         `json:"editing"`
	DayLocked  bool         `json:"day_locked"`
	Monitoring bool         `json:"monitoring"`
}

type CashierService struct {
	Store *AppStore
	Days  DayStateProvider
	Now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*CashierSession
}

func NewCashierService(store *AppStore, days DayStateProvider) *CashierService {
	return &CashierService{
		Store:    store,
		Days:     days,
		Now:      time.Now,
		sessions: make(map[string]*CashierSession),
	}
}

func (s *CashierService) session(id string) (*CashierSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.UpdatedAt = s.Now()
	return sess, nil
}

func (s *CashierService) view(ctx context.Context, sess *CashierSession) (SessionView, error) {
	day, err := s.Days.State(ctx, s.Now())
	if err != nil {
		return SessionView{}, err
	}
	v := SessionView{
		ID:         sess.ID,
		Order:      sess.Order.Clone(),
		TotalText:  utils.FormatCurrencyIDR(sess.Order.Total),
		Editing:    sess.Order.ID != "",
		DayLocked:  day.Locked,
		Monitoring: day.Locked && sess.Order.ID == "",
	}
	if sess.Builder != nil {
		bv := sess.Builder.View(s.Store.Catalog())
		v.Builder = &bv
	}
	return v, nil
}

// OpenSession membuat sesi kasir baru dengan keranjang kosong
func (s *CashierService) OpenSession(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &CashierSession{
		ID:        uuid.NewString(),
		Order:     models.NewOrder(),
		UpdatedAt: s.Now(),
	}
	s.sessions[sess.ID] = sess
	return s.view(ctx, sess)
}

func (s *CashierService) CloseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// PruneSessions membuang sesi yang tidak disentuh lebih lama dari maxIdle
func (s *CashierService) PruneSessions(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.Now().Add(-maxIdle)
	pruned := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

func (s *CashierService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *CashierService) Get(ctx context.Context, id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, sess)
}

// withSession menjalankan fn atas sesi lalu mengembalikan view terbaru
func (s *CashierService) withSession(ctx context.Context, id string, fn func(*CashierSession) error) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := fn(sess); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, sess)
}

func (s *CashierService) commit(ctx context.Context, sess *CashierSession, line CartLine) error {
	now := s.Now()
	day, err := s.Days.State(ctx, now)
	if err != nil {
		return err
	}
	order, err := AddOrUpdateItem(sess.Order, line, day, now)
	if err != nil {
		return err
	}
	sess.Order = order
	sess.Builder = nil
	return nil
}

// SelectItem -> tap satu item katalog. Item langsung masuk keranjang atau membuka builder
// sesuai kategorinya.
func (s *CashierService) SelectItem(ctx context.Context, id, itemID string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		item, ok := s.Store.Catalog().Lookup(itemID)
		if !ok {
			return ErrCatalogItemNotFound
		}

		day, err := s.Days.State(ctx, s.Now())
		if err != nil {
			return err
		}
		if day.Locked && sess.Order.ID == "" {
			return ErrMonitoringMode
		}

		if item.Kind != models.KindMenu {
			return s.commit(ctx, sess, CartLine{Item: item, Quantity: 1, EditIndex: NoEdit})
		}
		switch item.Category {
		case models.CategoryCombo, models.CategoryStandardNoodle, models.CategoryDoubleNoodle:
			sess.Builder = OpenBuilder(item)
			return nil
		default:
			return s.commit(ctx, sess, CartLine{Item: item, Quantity: 1, EditIndex: NoEdit})
		}
	})
}

func (s *CashierService) builder(sess *CashierSession) (*Builder, error) {
	if sess.Builder == nil {
		return nil, ErrBuilderNotOpen
	}
	return sess.Builder, nil
}

// Choose menjalankan pilihan builder (telur, jenis mie, rasa atau varian)
func (s *CashierService) Choose(ctx context.Context, id, choice string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		line, err := b.Choose(choice, s.Store.Catalog())
		if err != nil {
			return err
		}
		if line != nil {
			return s.commit(ctx, sess, *line)
		}
		return nil
	})
}

func (s *CashierService) topping(toppingID string) (models.CatalogItem, error) {
	t, ok := s.Store.Catalog().Topping(toppingID)
	if !ok {
		return models.CatalogItem{}, ErrToppingNotFound
	}
	return t, nil
}

func (s *CashierService) AdjustBuilderTopping(ctx context.Context, id, toppingID string, delta int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		t, err := s.topping(toppingID)
		if err != nil {
			return err
		}
		return b.AdjustTopping(t, delta)
	})
}

func (s *CashierService) SetBuilderTopping(ctx context.Context, id, toppingID string, qty int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		t, err := s.topping(toppingID)
		if err != nil {
			return err
		}
		return b.SetTopping(t, qty)
	})
}

func (s *CashierService) SetBuilderQuantity(ctx context.Context, id string, qty int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		b.SetQuantity(qty)
		return nil
	})
}

func (s *CashierService) AdjustBuilderQuantity(ctx context.Context, id string, delta int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		b.AdjustQuantity(delta)
		return nil
	})
}

// FinishBuilder memasukkan hasil builder ke keranjang
func (s *CashierService) FinishBuilder(ctx context.Context, id string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		b, err := s.builder(sess)
		if err != nil {
			return err
		}
		line, err := b.Finish()
		if err != nil {
			return err
		}
		return s.commit(ctx, sess, line)
	})
}

func (s *CashierService) CancelBuilder(ctx context.Context, id string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		sess.Builder = nil
		return nil
	})
}

// EditLine membuka kembali builder untuk satu baris keranjang
func (s *CashierService) EditLine(ctx context.Context, id string, index int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		if index < 0 || index >= len(sess.Order.Items) {
			return ErrLineNotFound
		}
		line := sess.Order.Items[index]

		item, ok := s.Store.Catalog().Lookup(line.ID)
		if !ok || item.Kind != models.KindMenu {
			return ErrNotCustomizable
		}
		// semua menu kecuali nasi bisa dibuka lagi di builder
		if item.Category == models.CategoryRice {
			return ErrNoToppingOptions
		}
		sess.Builder = OpenEditBuilder(item, index, line)
		return nil
	})
}

func (s *CashierService) SetItemQuantity(ctx context.Context, id string, index, qty int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		order, err := SetItemQuantity(sess.Order, index, qty)
		if err != nil {
			return err
		}
		sess.Order = order
		return nil
	})
}

func (s *CashierService) AdjustToppingQuantity(ctx context.Context, id string, index, toppingIndex, delta int) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		order, err := SetToppingQuantity(sess.Order, index, toppingIndex, delta)
		if err != nil {
			return err
		}
		sess.Order = order
		return nil
	})
}

// OrderUpdate -> field yang boleh diubah di header pesanan. nil berarti tidak diubah.
type OrderUpdate struct {
	CustomerName *string
	Status       models.PaymentStatus
	Method       models.PaymentMethod
}

func (s *CashierService) UpdateOrder(ctx context.Context, id string, upd OrderUpdate) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		order, err := SetPayment(sess.Order, upd.Status, upd.Method)
		if err != nil {
			return err
		}
		if upd.CustomerName != nil {
			order = SetCustomerName(order, *upd.CustomerName)
		}
		sess.Order = order
		return nil
	})
}

// SubmitResult adalah hasil proses pesanan
type SubmitResult struct {
	Transaction models.Order `json:"transaction"`
	Updated     bool         `json:"updated"`
	Session     SessionView  `json:"session"`
}

func (r SubmitResult) Notice() string {
	if r.Updated {
		return "Pesanan diperbarui!"
	}
	return "Pesanan diproses!"
}

// Submit menyimpan keranjang ke daftar transaksi lalu mengosongkan sesi.
// Event dikirim setelah lock sesi dilepas.
func (s *CashierService) Submit(ctx context.Context, id string) (SubmitResult, error) {
	res, err := s.submit(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}
	event := kds.EventTransactionSubmitted
	if res.Updated {
		event = kds.EventTransactionUpdated
	}
	s.Store.Publish(event, res.Transaction)
	return res, nil
}

func (s *CashierService) submit(ctx context.Context, id string) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(id)
	if err != nil {
		return SubmitResult{}, err
	}
	day, err := s.Days.State(ctx, s.Now())
	if err != nil {
		return SubmitResult{}, err
	}

	var updated bool
	_, err = s.Store.UpdateTransactions(ctx, func(txs []models.Order) ([]models.Order, error) {
		out, upd, err := SubmitOrder(txs, sess.Order, day.Locked)
		updated = upd
		return out, err
	})
	if err != nil {
		return SubmitResult{}, err
	}

	saved := sess.Order.Clone()
	saved.Total = models.CalculateTotal(saved.Items)

	sess.Order = models.NewOrder()
	sess.Builder = nil
	view, err := s.view(ctx, sess)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Transaction: saved, Updated: updated, Session: view}, nil
}

// Reset membuang keranjang (juga dipakai untuk membatalkan edit transaksi)
func (s *CashierService) Reset(ctx context.Context, id string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		sess.Order = models.NewOrder()
		sess.Builder = nil
		return nil
	})
}

// LoadTransaction memuat salinan transaksi tersimpan ke sesi untuk diedit
func (s *CashierService) LoadTransaction(ctx context.Context, id, transactionID string) (SessionView, error) {
	return s.withSession(ctx, id, func(sess *CashierSession) error {
		order, err := TransactionForEdit(s.Store.Transactions(), transactionID)
		if err != nil {
			return err
		}
		sess.Order = order
		sess.Builder = nil
		return nil
	})
}
