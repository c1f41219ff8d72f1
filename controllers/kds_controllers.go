package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/warung-pos/kds"
	"github.com/yeremiapane/warung-pos/models"
	"github.com/yeremiapane/warung-pos/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin sudah dibatasi CORS + token
	},
}

// Layar yang bisa berlangganan lewat /ws/:role
const (
	ScreenCashier = "cashier"
	ScreenQueue   = "queue"
)

type KDSController struct {
	Hub    *kds.Hub
	Ticker *services.ElapsedTicker
}

func NewKDSController(hub *kds.Hub, ticker *services.ElapsedTicker) *KDSController {
	return &KDSController{Hub: hub, Ticker: ticker}
}

func screenAllowed(screen, role string) bool {
	switch screen {
	case ScreenCashier:
		return role == models.RoleAdmin || role == models.RoleCashier
	case ScreenQueue:
		return role == models.RoleAdmin || role == models.RoleCashier || role == models.RoleKitchen
	}
	return false
}

// KDSHandler -> endpoint WebSocket. Layar antrian ikut memegang ticker waktu berlalu.
func (kc *KDSController) KDSHandler(c *gin.Context) {
	screen := c.Param("role")
	role := c.GetString("role")
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !screenAllowed(screen, role) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	kc.Hub.RegisterClient(ws, screen)
	if screen == ScreenQueue && kc.Ticker != nil {
		kc.Ticker.Acquire()
		defer kc.Ticker.Release()
	}

	// client tidak mengirim apa-apa, baca hanya untuk mendeteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.UnregisterClient(ws)
}
