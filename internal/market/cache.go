package market

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched snapshot stays fresh.
const DefaultTTL = 60 * time.Second

// Cache is a single-entry TTL cache in front of a Provider. A fresh entry is
// returned as-is (same pointer, same timestamp); a miss triggers exactly one
// fetch even under concurrent callers, via singleflight. When a fetch fails
// and a stale entry exists, the stale value is served and the error only
// logged.
type Cache struct {
	provider Provider
	ttl      time.Duration
	log      zerolog.Logger

	mu        sync.Mutex
	value     *Snapshot
	timestamp time.Time

	group singleflight.Group
	now   func() time.Time
}

// NewCache creates a cache. ttl <= 0 falls back to DefaultTTL.
func NewCache(p Provider, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{provider: p, ttl: ttl, log: log, now: time.Now}
}

// Get returns the cached snapshot, fetching when absent or expired.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if s, ok := c.fresh(); ok {
		return s, nil
	}

	v, err, _ := c.group.Do("market", func() (any, error) {
		// A concurrent caller may have refreshed while we queued.
		if s, ok := c.fresh(); ok {
			return s, nil
		}
		s, err := c.provider.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.value = s
		c.timestamp = c.now()
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		c.mu.Lock()
		stale := c.value
		c.mu.Unlock()
		if stale != nil {
			c.log.Warn().Err(err).Msg("market fetch failed, serving stale snapshot")
			return stale, nil
		}
		return nil, err
	}
	return v.(*Snapshot), nil
}

// LastFetched returns when the current entry was stored; zero when empty.
func (c *Cache) LastFetched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timestamp
}

func (c *Cache) fresh() (*Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.now().Sub(c.timestamp) >= c.ttl {
		return nil, false
	}
	return c.value, true
}
