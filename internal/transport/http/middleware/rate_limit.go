package middleware

import (
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter *rate.Limiter
	// last holds the unix nanos of the most recent request; accessed
	// atomically because the sweeper reads it from another goroutine.
	last atomic.Int64
}

func (v *visitor) touch() {
	v.last.Store(time.Now().UnixNano())
}

func (v *visitor) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, v.last.Load()))
}

// RateLimitPerIP applies a token-bucket limit per client IP, with an LRU
// cache bounding memory and a background sweep evicting idle entries.
func RateLimitPerIP(limit, burst, cacheSize int, ttl time.Duration) gin.HandlerFunc {
	visitors, _ := lru.New[string, *visitor](cacheSize)

	go func() {
		ticker := time.NewTicker(ttl)
		for range ticker.C {
			now := time.Now()
			for _, key := range visitors.Keys() {
				if v, ok := visitors.Peek(key); ok && v.idleFor(now) > ttl {
					visitors.Remove(key)
				}
			}
		}
	}()

	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}

		v, ok := visitors.Get(host)
		if !ok {
			v = &visitor{
				limiter: rate.NewLimiter(rate.Limit(limit), burst),
			}
			visitors.Add(host, v)
		}
		v.touch()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
