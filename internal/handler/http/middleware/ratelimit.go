package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

// TokenBucket is an in-memory per-IP rate limiter. Good enough for one
// instance; multi-instance deployments should front this with a shared
// limiter.
type TokenBucket struct {
	capacity int
	rate     int
	mu       sync.Mutex
	state    map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewTokenBucket creates a limiter holding capacity tokens refilled at
// perMinute per minute.
func NewTokenBucket(capacity, perMinute int) *TokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &TokenBucket{
		capacity: capacity,
		rate:     perMinute,
		state:    make(map[string]*bucket),
	}
}

// Handler enforces the per-IP limit.
func (l *TokenBucket) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}
		if !l.allow(ip) {
			response.TooManyRequests(w, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *TokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		b = &bucket{tokens: l.capacity - 1, last: now}
		l.state[key] = b
		return true
	}
	elapsed := now.Sub(b.last).Minutes()
	refill := int(elapsed * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
