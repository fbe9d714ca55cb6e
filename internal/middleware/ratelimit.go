package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// limiterPool hands out one token bucket per key. The LRU bounds memory
// when many distinct viewers show up.
type limiterPool struct {
	rps   float64
	burst int
	m     *lru.Cache[string, *rate.Limiter]
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	m, _ := lru.New[string, *rate.Limiter](10000)
	return &limiterPool{rps: rps, burst: burst, m: m}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	if l, ok := p.m.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	// 并发下可能重复创建，以先写入的为准
	if prev, ok, _ := p.m.PeekOrAdd(key, l); ok {
		return prev
	}
	return l
}

func (p *limiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

// RateLimit throttles writes per viewer, falling back to client IP.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	pool := newLimiterPool(rps, burst)
	return func(c *gin.Context) {
		key := ViewerID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !pool.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
