package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Strob0t/PartnerConsole/internal/logger"
)

const maxTrackedClients = 50000

// LoginThrottle limits sign-in attempts per client address with one token
// bucket per client. Only the routes it wraps are counted.
type LoginThrottle struct {
	mu      sync.Mutex
	clients map[string]*attempts
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

type attempts struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginThrottle allows perMinute sustained attempts per client with bursts
// of up to burst.
func NewLoginThrottle(perMinute, burst int) *LoginThrottle {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginThrottle{
		clients: make(map[string]*attempts),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		now:     time.Now,
	}
}

// Handler rejects throttled attempts with 429 and a Retry-After header.
func (t *LoginThrottle) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		wait, ok := t.take(client)
		if !ok {
			logger.From(r.Context()).Warn("sign-in throttled", "client", client)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("Too many sign-in attempts. Please wait a moment and try again.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// take consumes one attempt for client and reports the wait until the next
// one when none is left.
func (t *LoginThrottle) take(client string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	a, ok := t.clients[client]
	if !ok {
		if len(t.clients) >= maxTrackedClients {
			return time.Second, false
		}
		a = &attempts{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.clients[client] = a
	}
	a.lastSeen = now

	r := a.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Second, false
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return wait, false
	}
	return 0, true
}

// StartCleanup forgets clients idle for longer than maxIdle until ctx ends.
func (t *LoginThrottle) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.forgetIdle(maxIdle)
			}
		}
	}()
}

func (t *LoginThrottle) forgetIdle(maxIdle time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-maxIdle)
	for c, a := range t.clients {
		if a.lastSeen.Before(cutoff) {
			delete(t.clients, c)
		}
	}
}

// Len returns the number of tracked clients.
func (t *LoginThrottle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clients)
}

// clientAddr is the host part of RemoteAddr. chi's RealIP runs earlier in the
// chain when the console sits behind a trusted proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
