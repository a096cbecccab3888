// Throttle for the player action endpoints. A human clicking through the
// campaign UI stays far under the cap; a script hammering the API runs
// into it.
package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ActionLimiter caps each client to a fixed number of actions per window.
type ActionLimiter struct {
	mu      sync.Mutex
	clients map[string]*actionWindow
	limit   int
	span    time.Duration
}

type actionWindow struct {
	used  int
	since time.Time
}

// NewActionLimiter allows limit actions per span for each client.
func NewActionLimiter(limit int, span time.Duration) *ActionLimiter {
	return &ActionLimiter{
		clients: make(map[string]*actionWindow),
		limit:   limit,
		span:    span,
	}
}

// Allow records one action attempt and reports whether it fits the cap.
func (l *ActionLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[client]
	if !ok || now.Sub(w.since) >= l.span {
		if len(l.clients) > 1024 {
			l.pruneLocked(now)
		}
		l.clients[client] = &actionWindow{used: 1, since: now}
		return true
	}
	if w.used < l.limit {
		w.used++
		return true
	}
	return false
}

// RetryAfter returns whole seconds until the client's window resets.
func (l *ActionLimiter) RetryAfter(client string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[client]
	if !ok {
		return 0
	}
	left := l.span - time.Since(w.since)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// pruneLocked drops expired windows so one-off clients do not pile up.
func (l *ActionLimiter) pruneLocked(now time.Time) {
	for client, w := range l.clients {
		if now.Sub(w.since) >= l.span {
			delete(l.clients, client)
		}
	}
}

// Throttle wraps a player action handler, answering 429 over the cap.
func (l *ActionLimiter) Throttle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !l.Allow(client) {
			w.Header().Set("Retry-After", strconv.Itoa(l.RetryAfter(client)))
			http.Error(w, "too many actions", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP identifies the caller: the first X-Forwarded-For hop when the
// request came through a proxy, the remote address otherwise.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			xff = xff[:i]
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
