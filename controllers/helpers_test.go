package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/warung-pos/database"
	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/router"
	"github.com/yeremiapane/warung-pos/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testPasswords = database.SeedPasswords{Admin: "admin-pw", Cashier: "kasir-pw", Kitchen: "dapur-pw"}

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	hub     *kds.Hub
	store   *services.AppStore
	cashier *services.CashierService
	queue   *services.QueueService
	now     time.Time
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db, testPasswords))

	hub := kds.NewHub(nil)
	store := services.NewAppStore(services.NewGormRepository(db), hub)
	require.NoError(t, store.Load(context.Background()))

	// jam maju 1ms setiap dibaca supaya ID transaksi tidak bentrok
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	clock := func() time.Time { return now.Add(time.Duration(ticks.Add(1)) * time.Millisecond) }

	days := services.NewBusinessDayService(db, 0, time.UTC)
	ticker := services.NewElapsedTicker(store, time.Hour, nil)
	t.Cleanup(ticker.Stop)

	cashier := services.NewCashierService(store, days)
	cashier.Now = clock
	queue := services.NewQueueService(store, days)
	queue.Now = clock

	r := router.SetupRouter(router.Dependencies{
		DB:      db,
		Hub:     hub,
		Ticker:  ticker,
		Cashier: cashier,
		Queue:   queue,
		Catalog: services.NewCatalogService(services.NewGormRepository(db), store),
		Days:    days,
	})
	return &testServer{router: r, db: db, hub: hub, store: store, cashier: cashier, queue: queue, now: now}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// openSession membuka sesi kasir dan mengembalikan ID-nya
func (s *testServer) openSession(t *testing.T, token string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/cashier/sessions", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[services.SessionView](t, env.Data).ID
}
