package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"airnav/groundcheck/internal/constants"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an idle client's limiter is kept.
const limiterIdleTTL = 10 * time.Minute

// RateLimiter hands out one token bucket per client IP. Buckets of idle
// clients expire so the map does not grow without bound.
type RateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	metrics  *metrics.MetricsRegistry
}

func NewRateLimiter(rps float64, burst int, metricsReg *metrics.MetricsRegistry) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
		rps:      rate.Limit(rps),
		burst:    burst,
		metrics:  metricsReg,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, found := rl.limiters.Get(ip); found {
		limiter := v.(*rate.Limiter)
		// refresh expiry on use
		rl.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

// Middleware rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			rl.metrics.RateLimitedTotal.Inc()
			logging.Warn("Request rate limited", "ip", ip, "path", r.URL.Path)
			http.Error(w, constants.StatusTooManyReqs, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
