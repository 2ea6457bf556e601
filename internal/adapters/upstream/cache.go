package upstream

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache holds one value with an expiry instant. Time comes from the
// injected clock so expiry can be driven by a fake clock in tests.
type Cache[T any] struct {
	mu        sync.RWMutex
	clock     clockwork.Clock
	ttl       time.Duration
	value     T
	expiresAt time.Time
	set       bool
}

// NewCache returns an empty cache whose entries live for ttl.
func NewCache[T any](clock clockwork.Clock, ttl time.Duration) *Cache[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache[T]{clock: clock, ttl: ttl}
}

// Get returns the value while it is fresh. An expired value is never
// returned.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set || !c.clock.Now().Before(c.expiresAt) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores v and starts a new freshness window.
func (c *Cache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.expiresAt = c.clock.Now().Add(c.ttl)
	c.set = true
}

// Invalidate drops the stored value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.expiresAt = time.Time{}
	c.set = false
}

// ExpiresAt reports when the current value goes stale; zero when empty.
func (c *Cache[T]) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}
