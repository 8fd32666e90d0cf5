package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// SessionCache keeps per-session values in memory and lets idle sessions expire after ttl.
// Every entry costs 1, so maxItems bounds the number of live sessions.
type SessionCache[V any] struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewSessionCache[V any](maxItems int64, ttl time.Duration) (*SessionCache[V], error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache failed: %w", err)
	}
	return &SessionCache[V]{cache: c, ttl: ttl}, nil
}

func (c *SessionCache[V]) Get(id uuid.UUID) (V, bool) {
	if v, ok := c.cache.Get(id.String()); ok {
		val, ok := v.(V)
		return val, ok
	}
	var zero V
	return zero, false
}

// Set stores the value and refreshes its ttl. The write is visible to Get once it returns.
func (c *SessionCache[V]) Set(id uuid.UUID, v V) bool {
	ok := c.cache.SetWithTTL(id.String(), v, 1, c.ttl)
	c.cache.Wait()
	return ok
}

func (c *SessionCache[V]) Delete(id uuid.UUID) {
	c.cache.Del(id.String())
}

func (c *SessionCache[V]) Close() { c.cache.Close() }
