package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RealIP extracts the client's IP address, preferring X-Forwarded-For and
// falling back to RemoteAddr. The header is client-controlled; use it only
// for logging or behind a proxy that overwrites it.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the original client
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	return RemoteIP(r)
}

// RemoteIP returns the host part of RemoteAddr.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window, per-key request counter kept in memory.
type RateLimiter struct {
	limit      int
	period     time.Duration
	trustProxy bool

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter allows limit requests per key in each period. A limit of
// zero or less disables limiting.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
	}
}

// TrustProxy makes Limit key clients on X-Forwarded-For instead of the
// connection address. Enable it only behind a proxy that sets the header.
func (rl *RateLimiter) TrustProxy(on bool) *RateLimiter {
	rl.trustProxy = on
	return rl
}

func (rl *RateLimiter) clientKey(r *http.Request) string {
	if rl.trustProxy {
		return RealIP(r)
	}
	return RemoteIP(r)
}

// Allow records one request for key and reports whether it is within the
// limit.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{count: 1, resetAt: now.Add(rl.period)}
		return true
	}
	w.count++
	return w.count <= rl.limit
}

// Cleanup removes expired windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			rl.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// Limit rejects mutating requests over the limit, keyed by client IP. Reads
// are never limited. HTMX requests get an error toast instead of an error
// page.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || rl.Allow(rl.clientKey(r)) {
			next.ServeHTTP(w, r)
			return
		}

		switch {
		case r.Header.Get("HX-Request") == "true":
			trigger, _ := json.Marshal(map[string]any{
				"toast": []map[string]string{{"category": "error", "message": "Too many requests, slow down"}},
			})
			w.Header().Set("HX-Trigger", string(trigger))
			w.Header().Set("HX-Reswap", "none")
			w.WriteHeader(http.StatusTooManyRequests)
		case strings.HasPrefix(r.URL.Path, "/api/"):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
		default:
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
		}
	})
}
