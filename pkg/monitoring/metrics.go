package monitoring

import (
	"runtime"
	"sync"
	"time"
)

// Metrics is an in-process snapshot used by the health endpoints. Prometheus
// remains the source of truth for time series; this keeps a cheap local view.
type Metrics struct {
	mu sync.RWMutex

	HTTPRequestsTotal   map[string]int64         `json:"http_requests_total"`
	HTTPRequestDuration map[string]time.Duration `json:"http_request_duration"`

	DBConnectionsActive int64         `json:"db_connections_active"`
	DBQueryDuration     time.Duration `json:"db_query_duration"`
	DBQueryCount        int64         `json:"db_query_count"`

	RedisHitRate       float64 `json:"redis_hit_rate"`
	RedisCommandsTotal int64   `json:"redis_commands_total"`

	MemoryUsage    int64         `json:"memory_usage"`
	GoroutineCount int64         `json:"goroutine_count"`
	GCDuration     time.Duration `json:"gc_duration"`
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the process-wide metrics instance, starting the system
// collector on first use.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			HTTPRequestsTotal:   make(map[string]int64),
			HTTPRequestDuration: make(map[string]time.Duration),
		}

		go globalMetrics.collectSystemMetrics()
	})
	return globalMetrics
}

func (m *Metrics) IncrementHTTPRequest(method, path string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + path
	m.HTTPRequestsTotal[key]++
	m.HTTPRequestDuration[key] = duration
}

func (m *Metrics) IncrementDBQuery(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DBQueryCount++
	m.DBQueryDuration = duration
}

func (m *Metrics) UpdateRedisMetrics(hitRate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RedisHitRate = hitRate
	m.RedisCommandsTotal++
}

func (m *Metrics) collectSystemMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		m.mu.Lock()
		m.MemoryUsage = int64(memStats.Alloc)
		m.GoroutineCount = int64(runtime.NumGoroutine())
		m.GCDuration = time.Duration(memStats.PauseTotalNs)
		m.mu.Unlock()
	}
}

// GetSnapshot copies the current values so callers can serialize them without
// holding the lock.
func (m *Metrics) GetSnapshot() *Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := &Metrics{
		HTTPRequestsTotal:   make(map[string]int64),
		HTTPRequestDuration: make(map[string]time.Duration),
		DBConnectionsActive: m.DBConnectionsActive,
		DBQueryDuration:     m.DBQueryDuration,
		DBQueryCount:        m.DBQueryCount,
		RedisHitRate:        m.RedisHitRate,
		RedisCommandsTotal:  m.RedisCommandsTotal,
		MemoryUsage:         m.MemoryUsage,
		GoroutineCount:      m.GoroutineCount,
		GCDuration:          m.GCDuration,
	}

	for k, v := range m.HTTPRequestsTotal {
		snapshot.HTTPRequestsTotal[k] = v
	}
	for k, v := range m.HTTPRequestDuration {
		snapshot.HTTPRequestDuration[k] = v
	}

	return snapshot
}
