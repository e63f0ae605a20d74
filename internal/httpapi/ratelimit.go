package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiters tracks one token bucket per remote host. Entries idle
// past staleAfter are evicted on the next sweep so the map stays bounded.
type clientLimiters struct {
	mu      sync.Mutex
	perSec  rate.Limit
	burst   int
	clients map[string]*clientEntry
	swept   time.Time
}

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

const (
	staleAfter    = 10 * time.Minute
	sweepInterval = time.Minute
)

func newClientLimiters(perSec float64, burst int) *clientLimiters {
	return &clientLimiters{
		perSec:  rate.Limit(perSec),
		burst:   burst,
		clients: make(map[string]*clientEntry),
		swept:   time.Now(),
	}
}

func (cl *clientLimiters) allow(host string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	if now.Sub(cl.swept) > sweepInterval {
		for k, e := range cl.clients {
			if now.Sub(e.seen) > staleAfter {
				delete(cl.clients, k)
			}
		}
		cl.swept = now
	}

	e, ok := cl.clients[host]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(cl.perSec, cl.burst)}
		cl.clients[host] = e
	}
	e.seen = now
	return e.lim.Allow()
}

// RateLimit rejects clients that exceed perSec sustained requests with
// the given burst headroom. A non-positive rate disables limiting.
func RateLimit(perSec float64, burst int) Middleware {
	if perSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	cl := newClientLimiters(perSec, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !cl.allow(host) {
				WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
