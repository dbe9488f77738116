package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// ipLimiters holds one token bucket per client IP, dropping buckets that
// have been idle for a while.
type ipLimiters struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[string]*ipBucket
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(rps float64, burst int) *ipLimiters {
	return &ipLimiters{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*ipBucket),
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now

	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > limiterIdleTTL {
			delete(l.buckets, key)
		}
	}
	return b.limiter.Allow()
}

// RateLimit returns a middleware enforcing a per-IP token bucket. It is
// mounted on the credential endpoints only; routes behind the session
// middleware are not throttled.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(rps, burst)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}
		if !limiters.allow(ip) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
