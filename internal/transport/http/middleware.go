package transporthttp

import (
	"net/http"
	"sync"
	"time"
)

// APIKeyAuth allows an optional list of API keys; if the list is empty, auth
// is bypassed. Keys are expected in header: X-API-Key.
func APIKeyAuth(allowed map[string]struct{}) func(http.Handler) http.Handler {
	if len(allowed) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if _, ok := allowed[key]; !ok {
				WriteProblem(w, http.StatusUnauthorized, "unauthorized", "invalid or missing API key", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Simple global token bucket shared by all query routes.
type rateState struct {
	mu             sync.Mutex
	tokens         float64
	lastRefillNano int64
}

func RateLimitPerMinute(limitPerMin int, clock func() time.Time) func(http.Handler) http.Handler {
	if limitPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	state := &rateState{tokens: float64(limitPerMin), lastRefillNano: clock().UnixNano()}
	capacity := float64(limitPerMin)
	refillPerSec := float64(limitPerMin) / 60.0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state.mu.Lock()
			now := clock()
			elapsed := float64(now.UnixNano()-state.lastRefillNano) / 1e9
			state.lastRefillNano = now.UnixNano()

			state.tokens += elapsed * refillPerSec
			if state.tokens > capacity {
				state.tokens = capacity
			}
			if state.tokens < 1.0 {
				state.mu.Unlock()
				w.Header().Set("Retry-After", "3")
				WriteProblem(w, http.StatusTooManyRequests, "rate limit exceeded", "try again later", nil)
				return
			}
			state.tokens -= 1.0
			state.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
