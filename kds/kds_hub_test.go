package kds

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHubServer menjalankan server websocket kecil yang mendaftarkan setiap koneksi ke hub
func newHubServer(t *testing.T, hub *Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.RegisterClient(conn, r.URL.Query().Get("role"))
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesAllScreens(t *testing.T) {
	hub := NewHub(nil)
	url := newHubServer(t, hub)

	cashier := dial(t, url+"?role=cashier")
	queue := dial(t, url+"?role=queue")
	waitClients(t, hub, 2)

	hub.BroadcastMessage(Message{Event: EventTransactionSubmitted, Data: map[string]string{"id": "TRX-1"}})

	for _, conn := range []*websocket.Conn{cashier, queue} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		var msg struct {
			Event string            `json:"event"`
			Data  map[string]string `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, EventTransactionSubmitted, msg.Event)
		assert.Equal(t, "TRX-1", msg.Data["id"])
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil)
	url := newHubServer(t, hub)

	dial(t, url+"?role=queue")
	waitClients(t, hub, 1)

	hub.mutex.Lock()
	var conn *websocket.Conn
	for c := range hub.clients {
		conn = c
	}
	hub.mutex.Unlock()

	hub.UnregisterClient(conn)
	assert.Equal(t, 0, hub.ClientCount())
	// kedua kali tidak panik
	hub.UnregisterClient(conn)
}

func TestHub_BroadcastUnmarshalableIsDropped(t *testing.T) {
	hub := NewHub(nil)
	assert.NotPanics(t, func() {
		hub.BroadcastMessage(Message{Event: EventQueueTick, Data: make(chan int)})
	})
}

func TestHub_StalledClientIsDroppedAfterWriteWait(t *testing.T) {
	hub := NewHub(nil)
	hub.WriteWait = 100 * time.Millisecond
	url := newHubServer(t, hub)

	// client yang tidak pernah membaca, buffer socket akhirnya penuh
	dial(t, url+"?role=queue")
	waitClients(t, hub, 1)

	payload := strings.Repeat("x", 1<<20)
	for i := 0; i < 128 && hub.ClientCount() > 0; i++ {
		start := time.Now()
		hub.BroadcastMessage(Message{Event: EventQueueTick, Data: payload})
		require.Less(t, time.Since(start), 2*time.Second, "broadcast tertahan client macet")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
