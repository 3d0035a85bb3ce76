package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a client's limiter survives without requests.
const idleTTL = 10 * time.Minute

// RateLimiter throttles requests per client IP with a token bucket each.
type RateLimiter struct {
	clients sync.Map // client IP -> *client
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// NewRateLimiter starts a limiter whose idle clients are swept every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows rps requests per second per client IP with bursts of up to
// burst. Rejected requests get 429 with Retry-After. rps <= 0 disables limiting.
func (rl *RateLimiter) Limit(rps float64, burst int) Middleware {
	if burst < 1 {
		burst = 1
	}
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			c := rl.client(clientIP(r), rate.Limit(rps), burst, now)

			res := c.limiter.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) client(key string, limit rate.Limit, burst int, now time.Time) *client {
	v, ok := rl.clients.Load(key)
	if !ok {
		v, _ = rl.clients.LoadOrStore(key, &client{limiter: rate.NewLimiter(limit, burst)})
	}
	c := v.(*client)
	c.lastSeen.Store(now.UnixNano())
	return c
}

// evictIdle drops clients not seen since before now-ttl and returns how many were removed.
func (rl *RateLimiter) evictIdle(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl).UnixNano()
	removed := 0
	rl.clients.Range(func(key, value any) bool {
		if value.(*client).lastSeen.Load() < cutoff {
			rl.clients.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now, idleTTL)
		}
	}
}
