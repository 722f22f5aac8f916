package services

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/patirananta462-byte/papersharehub/internal/metrics"
)

// StatsCache keeps the aggregate counts shown on the home and categories
// pages. Entries expire after ttl and the whole cache is purged after every
// successful upload.
type StatsCache struct {
	cache *expirable.LRU[string, int64]
}

func NewStatsCache(size int, ttl time.Duration) *StatsCache {
	if size <= 0 {
		size = 64
	}
	return &StatsCache{cache: expirable.NewLRU[string, int64](size, nil, ttl)}
}

// GetOrLoad returns the cached value for key, calling load on a miss. Load
// errors are not cached.
func (c *StatsCache) GetOrLoad(key string, load func() (int64, error)) (int64, error) {
	if c == nil {
		return load()
	}
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return v, nil
	}
	metrics.RecordCacheLookup(false)

	v, err := load()
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, v)
	return v, nil
}

func (c *StatsCache) Purge() {
	if c == nil {
		return
	}
	c.cache.Purge()
}
