package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Auth and checkout endpoints get the strict tier so a
// stuck retry loop in a client cannot hammer the order pipeline.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{visitors: make(map[string]*visitor)}
	go rl.cleanupVisitors()
	return rl
}

// getVisitor retrieves or creates a rate limiter for the given bucket key.
func (rl *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// General applies the default per-client limit. It runs globally before
// authentication, so its identity is always the client IP.
func (rl *RateLimiter) General() gin.HandlerFunc {
	return rl.limit(limitGeneral, burstGeneral, "general", func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// Strict applies the tight limit used on auth and checkout routes. On
// authenticated routes it runs after the auth middleware, so the user ID
// is the identity; anonymous auth routes fall back to the client IP.
func (rl *RateLimiter) Strict() gin.HandlerFunc {
	return rl.limit(limitStrict, burstStrict, "strict", func(c *gin.Context) string {
		if userID := GetUserID(c); userID != "" {
			return "user:" + userID
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) limit(r rate.Limit, b int, tier string, identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The tier is part of the key so strict and general quotas for
		// the same client stay separate.
		key := identify(c) + ":" + tier

		if !rl.getVisitor(key, r, b).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}

		c.Next()
	}
}
