package middleware

import (
	"net/http"
	"sync"
	"time"

	"roomly/pkg/logger"
)

type IdentityExtractor func(r *http.Request) string

func DefaultIdentityExtractor(r *http.Request) string {
	return r.Header.Get(IdentityHeader)
}

// IdentityRateLimiter throttles requests per acting identity with a sliding
// window. Requests without an identity are not throttled here; they are
// attributed (or rejected) further down the stack.
type IdentityRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor IdentityExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewIdentityRateLimiter(limit int, window time.Duration, extractor IdentityExtractor, log *logger.Logger) *IdentityRateLimiter {
	limiter := &IdentityRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *IdentityRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for identity, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, identity)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *IdentityRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *IdentityRateLimiter) Allow(identity string) bool {
	if identity == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := make([]time.Time, 0, len(rl.requests[identity]))
	for _, ts := range rl.requests[identity] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[identity] = valid
		return false
	}

	rl.requests[identity] = append(valid, now)
	return true
}

func IdentityRateLimit(limiter *IdentityRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := limiter.extractor(r)

			if identity == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(identity) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", requestIDFromContext(r.Context()),
					"identity", identity,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
