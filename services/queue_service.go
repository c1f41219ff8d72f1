package services

import (
	"context"
	"time"

	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/models"
)

// DeliveryUpdate adalah payload event delivery_update
type DeliveryUpdate struct {
	TransactionID string       `json:"transaction_id"`
	ItemIndex     int          `json:"item_index"`
	AllDelivered  bool         `json:"all_delivered"`
	Transaction   models.Order `json:"transaction"`
}

// QueueService melayani layar antrian dapur
type QueueService struct {
	Store *AppStore
	Days  *BusinessDayService
	Now   func() time.Time
}

func NewQueueService(store *AppStore, days *BusinessDayService) *QueueService {
	return &QueueService{Store: store, Days: days, Now: time.Now}
}

func (s *QueueService) List(f QueueFilter) []QueueEntry {
	now := s.Now()
	if s.Days != nil {
		now = now.In(s.Days.Location)
	}
	return BuildQueue(s.Store.Transactions(), f, now)
}

func (s *QueueService) find(id string) (models.Order, error) {
	return TransactionForEdit(s.Store.Transactions(), id)
}

// ToggleDelivered membalik status antar satu baris
func (s *QueueService) ToggleDelivered(ctx context.Context, id string, index int) (models.Order, error) {
	txs, err := s.Store.UpdateTransactions(ctx, func(txs []models.Order) ([]models.Order, error) {
		return ToggleItemDelivered(txs, id, index)
	})
	if err != nil {
		return models.Order{}, err
	}
	t, err := TransactionForEdit(txs, id)
	if err != nil {
		return models.Order{}, err
	}
	s.Store.Publish(kds.EventDeliveryUpdate, DeliveryUpdate{
		TransactionID: id,
		ItemIndex:     index,
		AllDelivered:  t.AllDelivered(),
		Transaction:   t,
	})
	return t, nil
}

// DeliverAll menandai semua baris transaksi sudah diantar
func (s *QueueService) DeliverAll(ctx context.Context, id string) (models.Order, error) {
	txs, err := s.Store.UpdateTransactions(ctx, func(txs []models.Order) ([]models.Order, error) {
		return MarkAllDelivered(txs, id)
	})
	if err != nil {
		return models.Order{}, err
	}
	t, err := TransactionForEdit(txs, id)
	if err != nil {
		return models.Order{}, err
	}
	s.Store.Publish(kds.EventDeliveryUpdate, DeliveryUpdate{
		TransactionID: id,
		ItemIndex:     -1,
		AllDelivered:  true,
		Transaction:   t,
	})
	return t, nil
}

// Cancel menghapus transaksi. Konfirmasi ditangani di layer HTTP.
func (s *QueueService) Cancel(ctx context.Context, id string) (models.Order, error) {
	t, err := s.find(id)
	if err != nil {
		return models.Order{}, err
	}
	if _, err := s.Store.UpdateTransactions(ctx, func(txs []models.Order) ([]models.Order, error) {
		return CancelTransaction(txs, id)
	}); err != nil {
		return models.Order{}, err
	}
	s.Store.Publish(kds.EventTransactionCancelled, t)
	return t, nil
}

// Report -> rekap tanggal usaha; date kosong berarti tanggal usaha sekarang
func (s *QueueService) Report(ctx context.Context, date string) (DayReport, error) {
	if date == "" {
		date = s.Days.BusinessDate(s.Now())
	}
	closed, err := s.Days.IsClosed(ctx, date)
	if err != nil {
		return DayReport{}, err
	}
	report := BuildDayReport(s.Store.Transactions(), date)
	report.Closed = closed
	return report, nil
}

// CloseDayResult adalah payload event day_closed
type CloseDayResult struct {
	Day    models.ClosedDay `json:"day"`
	Report DayReport        `json:"report"`
}

// CloseDay mengunci tanggal usaha sekarang. Pesanan yang sudah ada tetap bisa diubah.
func (s *QueueService) CloseDay(ctx context.Context, closedBy string) (CloseDayResult, error) {
	now := s.Now()
	date := s.Days.BusinessDate(now)
	report := BuildDayReport(s.Store.Transactions(), date)

	day, err := s.Days.CloseDay(ctx, date, closedBy, report, now)
	if err != nil {
		return CloseDayResult{}, err
	}
	report.Closed = true

	res := CloseDayResult{Day: day, Report: report}
	s.Store.Publish(kds.EventDayClosed, res)
	return res, nil
}
