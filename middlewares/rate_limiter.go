package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/warung-pos/utils"
	"golang.org/x/time/rate"
)

// RateLimiter memberi token bucket per IP
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	message  string
}

// NewRateLimiter -> requests per interval untuk setiap IP
func NewRateLimiter(requests int, interval time.Duration) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	return &RateLimiter{
		limit:    rate.Every(interval / time.Duration(requests)),
		burst:    requests,
		limiters: make(map[string]*rate.Limiter),
		message:  "Terlalu banyak request, silakan tunggu beberapa saat",
	}
}

// NewStrictRateLimiter lebih ketat, dipakai untuk endpoint login
func NewStrictRateLimiter() *RateLimiter {
	rl := NewRateLimiter(5, time.Minute)
	rl.message = "Terlalu banyak percobaan, silakan tunggu beberapa saat"
	return rl
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = l
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New(rl.message))
			c.Abort()
			return
		}
		c.Next()
	}
}
