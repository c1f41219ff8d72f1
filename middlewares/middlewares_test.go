package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/warung-pos/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(CtxRole)})
	})
	r.GET("/x", handlers...)
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(AuthMiddleware())

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer rusak").Code)

	token, err := utils.GenerateToken(3, "dapur", "kitchen")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kitchen")

	// user id 0 ditolak
	token, err = utils.GenerateToken(0, "x", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestRequireRoles(t *testing.T) {
	r := newEngine(AuthMiddleware(), RequireRoles("admin", "cashier"))

	kitchen, err := utils.GenerateToken(3, "dapur", "kitchen")
	require.NoError(t, err)
	cashier, err := utils.GenerateToken(2, "kasir", "cashier")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+kitchen).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+cashier).Code)

	// tanpa AuthMiddleware role kosong
	bare := newEngine(RequireRoles("admin"))
	assert.Equal(t, http.StatusUnauthorized, doGet(bare, "").Code)
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(NewRateLimiter(2, time.Minute).RateLimit())

	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	w := doGet(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Terlalu banyak request")
}

func TestWebSocketAuthMiddleware_QueryToken(t *testing.T) {
	r := gin.New()
	r.GET("/ws/:role", WebSocketAuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUsername))
	})

	token, err := utils.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/queue?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/queue", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	w := doGet(newEngine(SecurityHeaders()), "")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
