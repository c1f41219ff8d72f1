package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/warung-pos/kds"
)

// QueueTick adalah payload event queue_tick: teks waktu berlalu per transaksi
type QueueTick struct {
	Now     time.Time         `json:"now"`
	Elapsed map[string]string `json:"elapsed"`
}

// ElapsedTicker menyegarkan teks "x menit lalu" di layar antrian.
// Ticker hanya jalan selama ada layar antrian yang memegangnya (Acquire/Release).
type ElapsedTicker struct {
	Store    *AppStore
	Interval time.Duration
	Now      func() time.Time

	mu       sync.Mutex
	holders  int
	stopChan chan struct{}
	log      *logrus.Logger
}

func NewElapsedTicker(store *AppStore, interval time.Duration, logger *logrus.Logger) *ElapsedTicker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ElapsedTicker{
		Store:    store,
		Interval: interval,
		Now:      time.Now,
		log:      logger,
	}
}

// Acquire menambah pemegang; ticker dimulai pada pemegang pertama
func (t *ElapsedTicker) Acquire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.holders++
	if t.holders == 1 {
		t.stopChan = make(chan struct{})
		go t.run(t.stopChan)
		t.log.Debug("elapsed ticker started")
	}
}

// Release mengurangi pemegang; ticker berhenti saat pemegang habis
func (t *ElapsedTicker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.holders == 0 {
		return
	}
	t.holders--
	if t.holders == 0 {
		close(t.stopChan)
		t.stopChan = nil
		t.log.Debug("elapsed ticker stopped")
	}
}

// Stop mematikan ticker apa pun jumlah pemegangnya (dipakai saat shutdown)
func (t *ElapsedTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopChan != nil {
		close(t.stopChan)
		t.stopChan = nil
	}
	t.holders = 0
}

func (t *ElapsedTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopChan != nil
}

func (t *ElapsedTicker) run(stop chan struct{}) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.Tick()
		case <-stop:
			return
		}
	}
}

// Tick menghitung ulang teks waktu untuk semua transaksi lalu broadcast
func (t *ElapsedTicker) Tick() QueueTick {
	now := t.Now()
	tick := QueueTick{Now: now, Elapsed: map[string]string{}}
	for _, tx := range t.Store.Transactions() {
		tick.Elapsed[tx.ID] = TimeElapsed(tx.CreatedAt, now)
	}
	t.Store.Publish(kds.EventQueueTick, tick)
	return tick
}
