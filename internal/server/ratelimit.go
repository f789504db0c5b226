package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	bucketIdleThreshold = time.Hour
	bucketSweepInterval = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter hands each client a bucket of tokens that is refilled in full
// once per window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts sweeping idle clients. Call Stop
// to end the sweep.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*clientBucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow takes a token from the client's bucket and reports whether one was
// available.
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		r.clients[client] = &clientBucket{tokens: r.capacity - 1, lastRefill: now}
		return r.capacity > 0
	}

	if now.Sub(bucket.lastRefill) >= r.window {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// clientAddress returns the host part of the request's remote address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimit rejects requests from clients that have used up their tokens.
// A nil limiter lets every request through.
func (h *handler) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	if h.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow(clientAddress(r)) {
			h.respondErrorWithOp(w, http.StatusTooManyRequests, "rate limit exceeded", "server.rateLimit")
			return
		}
		next(w, r)
	}
}
