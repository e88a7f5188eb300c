package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// IPRateLimiter limits requests per client IP using a token bucket per IP.
type IPRateLimiter struct {
	ips   map[string]*rate.Limiter
	mu    sync.RWMutex
	limit rate.Limit
	burst int
}

// NewIPRateLimiter creates a per-IP rate limiter. limit is events per second (e.g. rate.Every(time.Minute) for 1/min);
// for N per minute use rate.Limit(float64(N)/60.0). burst is max tokens per bucket.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.ips[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check after acquiring write lock
	if lim, ok = l.ips[ip]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.ips[ip] = lim
	return lim
}

// clientIP returns the client host. chi's RealIP middleware has already
// replaced RemoteAddr from X-Forwarded-For / X-Real-IP when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// Middleware returns a chi-compatible middleware that returns 429 when the client IP exceeds the rate.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		lim := l.getLimiter(ip)
		if !lim.Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many attempts, try again in a minute.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthRateLimiter returns a limiter for the sign-up and log-in forms: 10 requests per minute per IP, burst 5.
func AuthRateLimiter() *IPRateLimiter {
	// 10 per minute = 10/60 per second
	return NewIPRateLimiter(rate.Limit(10.0/60.0), 5)
}
