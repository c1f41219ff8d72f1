package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	EventTransactionSubmitted = "transaction_submitted"
	EventTransactionUpdated   = "transaction_updated"
	EventTransactionCancelled = "transaction_cancelled"
	EventDeliveryUpdate       = "delivery_update"
	EventDayClosed            = "day_closed"
	EventCatalogUpdate        = "catalog_update"
	EventQueueTick            = "queue_tick"
)

// DefaultWriteWait -> batas waktu menulis satu pesan ke satu client
const DefaultWriteWait = 10 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client layar (kasir, dapur, admin) yang terhubung lewat websocket.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
	log     *logrus.Logger

	// WriteWait membatasi berapa lama client yang macet bisa menahan broadcast
	WriteWait time.Duration
}

func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		clients:   make(map[*websocket.Conn]string),
		log:       logger,
		WriteWait: DefaultWriteWait,
	}
}

// RegisterClient -> menambahkan connection dengan role
func (h *Hub) RegisterClient(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastMessage mengirim pesan ke semua client. Client yang gagal ditulis dilepas.
func (h *Hub) BroadcastMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("marshal websocket message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		err := conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, data)
		}
		if err != nil {
			h.log.WithFields(logrus.Fields{"event": msg.Event, "role": role}).WithError(err).Warn("drop websocket client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
	h.log.WithFields(logrus.Fields{"event": msg.Event, "clients": len(h.clients)}).Debug("broadcast")
}
