package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"omnily-go-admin/pkg/monitoring"
)

// CacheManager is a two-level cache: a small local map in front of Redis.
type CacheManager struct {
	redis     *redis.Client
	local     *LocalCache
	enabled   bool
	redisAddr string

	hits   atomic.Int64
	misses atomic.Int64
}

type LocalCache struct {
	data map[string]*CacheItem
	mu   sync.RWMutex
}

type CacheItem struct {
	Value     interface{}
	ExpiresAt time.Time
}

// NewCacheManager wraps the Redis client; pass nil for a local-only cache.
func NewCacheManager(redisClient *redis.Client) *CacheManager {
	cm := &CacheManager{
		redis: redisClient,
		local: &LocalCache{
			data: make(map[string]*CacheItem),
		},
		enabled: true,
	}

	go cm.cleanupLocalCache()

	return cm
}

// Get reads the key into dest, local cache first, then Redis.
func (cm *CacheManager) Get(ctx context.Context, key string, dest interface{}) error {
	if !cm.enabled {
		return fmt.Errorf("cache disabled")
	}

	if value, found := cm.getFromLocal(key); found {
		cm.recordLookup(true, "local")
		return json.Unmarshal(value, dest)
	}

	if cm.redis != nil {
		data, err := cm.redis.Get(ctx, key).Bytes()
		if err == nil {
			cm.recordLookup(true, "redis")
			// Populate the local layer with a short TTL.
			cm.setToLocal(key, data, 5*time.Minute)
			return json.Unmarshal(data, dest)
		}
	}

	cm.recordLookup(false, "redis")
	return fmt.Errorf("cache miss")
}

// recordLookup feeds the hit counters and the shared metrics collectors.
func (cm *CacheManager) recordLookup(hit bool, layer string) {
	if hit {
		cm.hits.Add(1)
		monitoring.RecordRedisCommand("get", "hit")
	} else {
		cm.misses.Add(1)
		monitoring.RecordRedisCommand("get", "miss")
	}

	total := cm.hits.Load() + cm.misses.Load()
	if total == 0 {
		return
	}
	rate := float64(cm.hits.Load()) / float64(total)
	monitoring.UpdateCacheHitRate(layer, rate)
	monitoring.GetMetrics().UpdateRedisMetrics(rate)
}

// Set writes the value to both layers. The Redis write happens async.
func (cm *CacheManager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !cm.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	// Cap the local TTL to keep memory bounded.
	localTTL := ttl
	if localTTL > 10*time.Minute {
		localTTL = 10 * time.Minute
	}
	cm.setToLocal(key, data, localTTL)

	if cm.redis != nil {
		go func() {
			cm.redis.Set(context.Background(), key, data, ttl)
		}()
	}

	return nil
}

// Delete removes the key from both layers.
func (cm *CacheManager) Delete(ctx context.Context, key string) error {
	cm.deleteFromLocal(key)

	if cm.redis != nil {
		cm.redis.Del(ctx, key)
	}

	return nil
}

func (cm *CacheManager) getFromLocal(key string) ([]byte, bool) {
	cm.local.mu.RLock()
	defer cm.local.mu.RUnlock()

	item, exists := cm.local.data[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		return nil, false
	}

	if data, ok := item.Value.([]byte); ok {
		return data, true
	}

	return nil, false
}

func (cm *CacheManager) setToLocal(key string, value []byte, ttl time.Duration) {
	cm.local.mu.Lock()
	defer cm.local.mu.Unlock()

	cm.local.data[key] = &CacheItem{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (cm *CacheManager) deleteFromLocal(key string) {
	cm.local.mu.Lock()
	defer cm.local.mu.Unlock()

	delete(cm.local.data, key)
}

func (cm *CacheManager) cleanupLocalCache() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cm.local.mu.Lock()
		now := time.Now()
		for key, item := range cm.local.data {
			if now.After(item.ExpiresAt) {
				delete(cm.local.data, key)
			}
		}
		cm.local.mu.Unlock()
	}
}

// GetStats reports cache health for the monitoring endpoints.
func (cm *CacheManager) GetStats() map[string]interface{} {
	cm.local.mu.RLock()
	localItemCount := len(cm.local.data)
	cm.local.mu.RUnlock()

	hits := cm.hits.Load()
	misses := cm.misses.Load()
	stats := map[string]interface{}{
		"enabled":         cm.enabled,
		"local_items":     localItemCount,
		"redis_connected": cm.redis != nil,
		"hits":            hits,
		"misses":          misses,
	}
	if total := hits + misses; total > 0 {
		stats["hit_rate"] = float64(hits) / float64(total)
	}

	if cm.redis != nil {
		if info, err := cm.redis.Info(context.Background(), "stats").Result(); err == nil {
			stats["redis_info"] = info
		}
	}

	return stats
}

// Clear wipes both layers. Flushes the whole Redis DB, so use with care.
func (cm *CacheManager) Clear(ctx context.Context) error {
	cm.local.mu.Lock()
	cm.local.data = make(map[string]*CacheItem)
	cm.local.mu.Unlock()

	if cm.redis != nil {
		return cm.redis.FlushDB(ctx).Err()
	}

	return nil
}

func (cm *CacheManager) Enable() {
	cm.enabled = true
}

func (cm *CacheManager) Disable() {
	cm.enabled = false
}
