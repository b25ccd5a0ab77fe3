// Package ratelimiter keeps one token bucket per client identity and forgets
// identities that stay idle longer than the expiration time.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	timer   *time.Timer
}

// UserRateLimiter manages rate limiting for multiple identities
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
}

// New allows perSecond requests per identity with bursts up to burst.
func New(perSecond float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(perSecond),
		burst:          burst,
		expirationTime: expirationTime,
	}
}

// PerMinute is New with the rate given per minute.
func PerMinute(perMinute float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return New(perMinute/60, burst, expirationTime)
}

func (url *UserRateLimiter) getLimiter(id string) *rate.Limiter {
	url.mu.Lock()
	defer url.mu.Unlock()

	e, exists := url.limiters[id]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(url.rate, url.burst)}
		url.limiters[id] = e
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(url.expirationTime, func() { url.cleanup(id, e) })
	return e.limiter
}

// cleanup drops id unless it was replaced in the meantime
func (url *UserRateLimiter) cleanup(id string, e *entry) {
	url.mu.Lock()
	defer url.mu.Unlock()
	if url.limiters[id] == e {
		delete(url.limiters, id)
	}
}

// Allow checks if a request should be allowed for a given identity
func (url *UserRateLimiter) Allow(id string) bool {
	return url.getLimiter(id).Allow()
}

// Len reports how many identities are tracked.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

// Stop cleans up all timers
func (url *UserRateLimiter) Stop() {
	url.mu.Lock()
	defer url.mu.Unlock()

	for _, e := range url.limiters {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}
