package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/warung-pos/config"
	"github.com/yeremiapane/warung-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SetLogLevel("error")
	os.Exit(m.Run())
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *client) call(method, path string, body interface{}) (int, apiResponse) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (c *client) data(raw json.RawMessage, v interface{}) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(raw, v))
}

func newIntegrationApp(t *testing.T) (*app, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		DBDriver:            "sqlite",
		DBDSN:               "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		CutoffHour:          0,
		Location:            time.UTC,
		QueueTick:           time.Hour,
		SeedAdminPassword:   "admin123",
		SeedCashierPassword: "kasir123",
		SeedKitchenPassword: "dapur123",
	}
	db, err := config.InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	a, err := newApp(cfg, db)
	require.NoError(t, err)
	t.Cleanup(a.ticker.Stop)

	srv := httptest.NewServer(a.router)
	t.Cleanup(srv.Close)
	return a, srv
}

func login(t *testing.T, srv *httptest.Server, username, password string) *client {
	t.Helper()
	c := &client{t: t, server: srv}
	code, resp := c.call(http.MethodPost, "/login", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var body struct {
		Token string `json:"token"`
	}
	c.data(resp.Data, &body)
	c.token = body.Token
	return c
}

func TestWarungPOS_FullDay(t *testing.T) {
	a, srv := newIntegrationApp(t)

	kasir := login(t, srv, "kasir", "kasir123")
	dapur := login(t, srv, "dapur", "dapur123")
	admin := login(t, srv, "admin", "admin123")

	code, resp := kasir.call(http.MethodGet, "/business-day", nil)
	require.Equal(t, http.StatusOK, code)
	var day struct {
		Date   string `json:"date"`
		Locked bool   `json:"locked"`
	}
	kasir.data(resp.Data, &day)
	assert.False(t, day.Locked)

	// pesanan 1: mie bangladesh complete + es teh
	code, resp = kasir.call(http.MethodPost, "/cashier/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	var session struct {
		ID string `json:"id"`
	}
	kasir.data(resp.Data, &session)
	base := "/cashier/sessions/" + session.ID

	code, _ = kasir.call(http.MethodPost, base+"/items", map[string]string{"item_id": "menu-bangladesh-complete"})
	require.Equal(t, http.StatusOK, code)
	code, _ = kasir.call(http.MethodPost, base+"/builder/choice", map[string]string{"choice": "Telur Dadar"})
	require.Equal(t, http.StatusOK, code)
	code, _ = kasir.call(http.MethodPost, base+"/items", map[string]string{"item_id": "drink-es-teh"})
	require.Equal(t, http.StatusOK, code)
	code, _ = kasir.call(http.MethodPatch, base+"/order", map[string]string{"customer_name": "Meja 3"})
	require.Equal(t, http.StatusOK, code)

	code, resp = kasir.call(http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	assert.Equal(t, "Pesanan diproses!", resp.Message)
	var submitted struct {
		Transaction struct {
			ID    string `json:"id"`
			Total int64  `json:"total"`
		} `json:"transaction"`
	}
	kasir.data(resp.Data, &submitted)
	assert.Equal(t, int64(34000), submitted.Transaction.Total)
	firstID := submitted.Transaction.ID

	// pesanan 2: nasi saja
	time.Sleep(2 * time.Millisecond)
	code, _ = kasir.call(http.MethodPost, base+"/items", map[string]string{"item_id": "menu-nasi-ayam"})
	require.Equal(t, http.StatusOK, code)
	code, resp = kasir.call(http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, code)
	kasir.data(resp.Data, &submitted)
	secondID := submitted.Transaction.ID
	require.NotEqual(t, firstID, secondID)

	// dapur melihat dua kartu, yang terlama nomor 1
	code, resp = dapur.call(http.MethodGet, "/queue?delivered=pending", nil)
	require.Equal(t, http.StatusOK, code)
	var queue []struct {
		QueueNumber    int `json:"queue_number"`
		KitchenSummary []struct {
			Key      string `json:"key"`
			Quantity int    `json:"quantity"`
		} `json:"kitchen_summary"`
		Transaction struct {
			ID string `json:"id"`
		} `json:"transaction"`
	}
	dapur.data(resp.Data, &queue)
	require.Len(t, queue, 2)
	assert.Equal(t, secondID, queue[0].Transaction.ID)
	assert.Equal(t, 1, queue[1].QueueNumber)
	require.NotEmpty(t, queue[1].KitchenSummary)
	assert.Equal(t, "TOTAL MIE BANGLADESH", queue[1].KitchenSummary[0].Key)

	code, _ = dapur.call(http.MethodPost, "/queue/"+firstID+"/deliver-all", nil)
	require.Equal(t, http.StatusOK, code)

	// batal butuh konfirmasi
	code, _ = kasir.call(http.MethodDelete, "/queue/"+secondID, nil)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = kasir.call(http.MethodDelete, "/queue/"+secondID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, code)

	// tutup hari
	code, _ = admin.call(http.MethodPost, "/queue/close-day", map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, code)

	code, resp = kasir.call(http.MethodPost, base+"/items", map[string]string{"item_id": "drink-es-teh"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, resp.Message, "Mode Monitoring")

	// data tersimpan di database, bukan hanya di memori
	require.NoError(t, a.store.Load(context.Background()))
	txs := a.store.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, firstID, txs[0].ID)
	assert.True(t, txs[0].AllDelivered())

	code, resp = admin.call(http.MethodGet, "/queue/report", nil)
	require.Equal(t, http.StatusOK, code)
	var report struct {
		OrderCount int   `json:"order_count"`
		Revenue    int64 `json:"revenue"`
		Closed     bool  `json:"closed"`
	}
	admin.data(resp.Data, &report)
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, int64(34000), report.Revenue)
	assert.True(t, report.Closed)
}

func TestPruneSessionsLoop(t *testing.T) {
	a, _ := newIntegrationApp(t)
	_, err := a.cashier.OpenSession(context.Background())
	require.NoError(t, err)
	a.cashier.Now = func() time.Time { return time.Now().Add(sessionMaxIdle + time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.pruneSessions(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return a.cashier.SessionCount() == 0
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}
