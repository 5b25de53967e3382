package common

import (
	"sync"
	"time"

	"k8s.io/klog/v2"
)

type cacheEntry[V any] struct {
	value V
	added int64
}

// TTLCache remembers values for a limited time; expired entries are dropped
// by a background ticker.
type TTLCache[V any] struct {
	ttl     int64
	entries map[string]cacheEntry[V]
	mLock   sync.Mutex
}

// NewCache creates a cache whose entries live for ttl milliseconds and which
// is swept every tick milliseconds. Closing the returned channel stops the sweeping.
func NewCache[V any](ttl int, tick time.Duration) (*TTLCache[V], chan struct{}) {
	cache := &TTLCache[V]{ttl: int64(ttl), entries: make(map[string]cacheEntry[V])}
	done := make(chan struct{})
	if tick <= 0 || ttl <= 0 || tick > MaxFailureCacheTimeout || ttl > MaxFailureCacheTTL {
		klog.Errorf("Not sweeping cache: invalid timing values ttl=%d, tick=%d.", ttl, tick)
		return cache, done
	}

	go func() {
		ticker := time.NewTicker(tick * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				if n := cache.sweep(now.UnixMilli()); n > 0 {
					klog.V(4).Infof("Swept %d cache entries.", n)
				}
			case <-done:
				return
			}
		}
	}()
	return cache, done
}

// sweep drops the expired entries and returns how many there were.
func (c *TTLCache[V]) sweep(now int64) int {
	c.mLock.Lock()
	defer c.mLock.Unlock()
	n := 0
	for k, e := range c.entries {
		if now-e.added > c.ttl {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Put stores value under key, restarting its ttl.
func (c *TTLCache[V]) Put(key string, value V) {
	c.mLock.Lock()
	c.entries[key] = cacheEntry[V]{value: value, added: time.Now().UnixMilli()}
	c.mLock.Unlock()
}

// Get returns the value stored under key. Expired entries are reported as
// missing even when they have not been swept yet.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mLock.Lock()
	defer c.mLock.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().UnixMilli()-e.added > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Len returns the number of entries not swept yet.
func (c *TTLCache[V]) Len() int {
	c.mLock.Lock()
	defer c.mLock.Unlock()
	return len(c.entries)
}
