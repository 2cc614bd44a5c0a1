package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pratofit/server/internal/config"
	"golang.org/x/time/rate"
)

// visitorLimiters holds one token bucket per client IP. Idle buckets are
// swept opportunistically so the map does not grow without bound.
type visitorLimiters struct {
	mu       sync.Mutex
	byIP     map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	requests atomic.Int64
}

const sweepEvery = 1000

func newVisitorLimiters(rps int, burst int) *visitorLimiters {
	return &visitorLimiters{
		byIP:  make(map[string]*rate.Limiter),
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

func (v *visitorLimiters) get(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	lim, ok := v.byIP[ip]
	if !ok {
		lim = rate.NewLimiter(v.rps, v.burst)
		v.byIP[ip] = lim
	}

	if v.requests.Add(1)%sweepEvery == 0 {
		v.sweep()
	}

	return lim
}

// sweep drops limiters whose bucket is full again. A full bucket means the
// client has been quiet long enough to be forgotten.
func (v *visitorLimiters) sweep() {
	for ip, lim := range v.byIP {
		if lim.Tokens() >= float64(v.burst) {
			delete(v.byIP, ip)
		}
	}
}

// RateLimitMiddleware applies a per-IP token bucket. With RateLimitRPS <= 0
// the middleware passes everything through untouched.
func RateLimitMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	if cfg.RateLimitRPS <= 0 {
		return next
	}

	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = cfg.RateLimitRPS
	}

	visitors := newVisitorLimiters(cfg.RateLimitRPS, burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !visitors.get(clientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    "rate_limited",
					"message": "Too many requests",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP picks the first hop from X-Forwarded-For when a proxy set it,
// otherwise the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
