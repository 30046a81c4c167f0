package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	dbConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Database connections currently in use",
		},
	)

	dbQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency distribution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"operation", "table"},
	)

	redisCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_commands_total",
			Help: "Total number of Redis commands executed",
		},
		[]string{"command", "status"},
	)

	redisCacheHitRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "redis_cache_hit_rate",
			Help: "Redis cache hit rate",
		},
		[]string{"cache_type"},
	)

	// Analytics pipeline metrics.
	dashboardCompositions = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_composition_duration_seconds",
			Help:    "Dashboard fan-out composition latency",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"status"},
	)

	dashboardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Dashboard cache lookups by outcome",
		},
		[]string{"status"},
	)

	anomaliesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anomalies_detected_total",
			Help: "Anomalies raised by the detection rules",
		},
		[]string{"severity"},
	)

	notificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Notification messages published to the queue",
		},
		[]string{"kind", "status"},
	)

	tierRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tier_recomputes_total",
			Help: "Customer tier recompute runs",
		},
	)

	userLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "Total number of admin logins",
		},
	)
)

// PrometheusMiddleware collects HTTP metrics for every request passing
// through the router.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)

		// MongoDB request log, async.
		SaveHTTPMetric(c, duration)
	}
}

// ObserveDashboardComposition records one dashboard fan-out run.
func ObserveDashboardComposition(d time.Duration, status string) {
	dashboardCompositions.WithLabelValues(status).Observe(d.Seconds())
}

// RecordDashboardCache records a cache lookup outcome ("hit" or "miss").
func RecordDashboardCache(status string) {
	dashboardCacheLookups.WithLabelValues(status).Inc()
}

// RecordAnomaly counts a raised anomaly by severity.
func RecordAnomaly(severity string) {
	anomaliesDetected.WithLabelValues(severity).Inc()
}

// RecordNotificationPublish counts a queue publish attempt.
func RecordNotificationPublish(kind, status string) {
	notificationsPublished.WithLabelValues(kind, status).Inc()
}

// RecordTierRecompute counts a tier recompute run.
func RecordTierRecompute() {
	tierRecomputes.Inc()
}

func RecordUserLogin() {
	userLogins.Inc()
}

func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueriesTotal.WithLabelValues(operation, table).Inc()
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func UpdateDBConnections(inUse int) {
	dbConnectionsInUse.Set(float64(inUse))
}

func RecordRedisCommand(command, status string) {
	redisCommandsTotal.WithLabelValues(command, status).Inc()
}

func UpdateCacheHitRate(cacheType string, hitRate float64) {
	redisCacheHitRate.WithLabelValues(cacheType).Set(hitRate)
}
