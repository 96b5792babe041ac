package middlewares

import (
	"math"
	"sync"
	"time"

	"github.com/ToXMon/fitagent/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		rl.prune()
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// prune drops buckets idle for over ten minutes. Caller holds the lock.
func (rl *RateLimiter) prune() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for key, cl := range rl.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.get(c.ClientIP())

		res := lim.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			retry := uint(math.Ceil(delay.Seconds()))
			if retry == 0 {
				retry = 1
			}
			c.Error(&models.RateLimitExceeded{
				RetryAfterSeconds: retry,
				Message:           "client exceeded request rate",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
