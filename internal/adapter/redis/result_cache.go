package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/adapter/metrics"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
	goredis "github.com/redis/go-redis/v9"
)

const (
	layerMemory = "memory"
	layerRedis  = "redis"
)

// ResultCache is a two-layer analysis result cache: an in-process map in front of
// Redis. Redis failures are logged and reported as misses.
type ResultCache struct {
	rdb     goredis.Cmdable
	ttl     time.Duration
	mem     *memoryCache
	clock   clockwork.Clock
	metrics *metrics.CacheMetrics
}

var _ domain.ResultCache = (*ResultCache)(nil)

// NewResultCache creates the cache. ttl bounds Redis entries, memTTL bounds the
// in-process copies.
func NewResultCache(rdb goredis.Cmdable, ttl, memTTL time.Duration, clock clockwork.Clock, m *metrics.CacheMetrics) *ResultCache {
	return &ResultCache{
		rdb:     rdb,
		ttl:     ttl,
		mem:     newMemoryCache(memTTL, clock),
		clock:   clock,
		metrics: m,
	}
}

// StartEvictionTimer runs a periodic goroutine that evicts expired in-memory entries.
// Returns a stop function that should be deferred.
func (c *ResultCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				c.evict()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (c *ResultCache) evict() {
	evicted := c.mem.evictExpired()
	remaining := c.mem.size()
	c.metrics.Evictions.Add(float64(evicted))
	c.metrics.Entries.Set(float64(remaining))
	if evicted > 0 {
		slog.Debug("Evicted expired result cache entries", "count", evicted, "remaining", remaining)
	}
}

func (c *ResultCache) Get(ctx context.Context, key string) (sentiment.Result, bool) {
	// Layer 1: in-memory
	if result, ok := c.mem.get(key); ok {
		c.metrics.Hits.WithLabelValues(layerMemory).Inc()
		return result, true
	}

	// Layer 2: Redis
	data, err := c.rdb.Get(ctx, resultCacheKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.metrics.Errors.WithLabelValues("get").Inc()
			slog.WarnContext(ctx, "Redis result cache GET failed", "error", err)
		}
		c.metrics.Misses.Inc()
		return sentiment.Result{}, false
	}

	var result sentiment.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.metrics.Errors.WithLabelValues("decode").Inc()
		slog.WarnContext(ctx, "Failed to unmarshal cached result", "error", err)
		c.metrics.Misses.Inc()
		return sentiment.Result{}, false
	}

	c.metrics.Hits.WithLabelValues(layerRedis).Inc()
	c.mem.set(key, result)
	return result, true
}

func (c *ResultCache) Set(ctx context.Context, key string, result sentiment.Result) {
	c.mem.set(key, result)

	encoded, err := json.Marshal(result)
	if err != nil {
		slog.WarnContext(ctx, "Failed to marshal result for Redis cache", "error", err)
		return
	}

	if err := c.rdb.Set(ctx, resultCacheKey(key), encoded, c.ttl).Err(); err != nil {
		c.metrics.Errors.WithLabelValues("set").Inc()
		slog.WarnContext(ctx, "Failed to populate Redis result cache", "error", err)
	}
}

func resultCacheKey(key string) string {
	return "result_cache:v1:" + key
}

// memoryCache is an in-memory L1 cache with TTL-based expiry.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type memoryCacheEntry struct {
	result    sentiment.Result
	expiresAt time.Time
}

func newMemoryCache(ttl time.Duration, clock clockwork.Clock) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryCacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *memoryCache) get(key string) (sentiment.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return sentiment.Result{}, false
	}
	return entry.result, true
}

func (c *memoryCache) set(key string, result sentiment.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryCacheEntry{
		result:    result,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

func (c *memoryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *memoryCache) evictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
