package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// limiter hands out one token bucket per client key (usually the IP).
type limiter struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	now   func() time.Time
	byKey map[string]*bucket
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLimiter(rps float64, burst int, now func() time.Time) *limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	if now == nil {
		now = time.Now
	}
	return &limiter{rps: rate.Limit(rps), burst: burst, now: now, byKey: make(map[string]*bucket)}
}

func (l *limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.byKey[key]; ok {
		b.seen = l.now()
		return b.lim
	}
	if key == "" {
		log.Warn().Msg("rate limiter key is empty")
	}
	b := &bucket{lim: rate.NewLimiter(l.rps, l.burst), seen: l.now()}
	l.byKey[key] = b
	return b.lim
}

// evictIdle drops buckets not used since cutoff and returns how many went.
func (l *limiter) evictIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, b := range l.byKey {
		if b.seen.Before(cutoff) {
			delete(l.byKey, key)
			n++
		}
	}
	return n
}

// middleware rejects requests over the client's budget with 429.
func (l *limiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(clientKey(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the request IP without port; RealIP has already applied proxy headers.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
