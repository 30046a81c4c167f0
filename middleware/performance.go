package middleware

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/pkg/response"
)

type PerformanceConfig struct {
	SlowThreshold time.Duration
	EnableLogging bool
	SkipPaths     []string
}

func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		SlowThreshold: 500 * time.Millisecond,
		EnableLogging: true,
		SkipPaths:     []string{"/health", "/metrics", "/favicon.ico"},
	}
}

// Performance logs slow requests and attaches timing headers in debug mode.
func Performance(config ...PerformanceConfig) gin.HandlerFunc {
	cfg := DefaultPerformanceConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		monitoring.GetMetrics().IncrementHTTPRequest(method, path, latency)

		if cfg.EnableLogging && latency > cfg.SlowThreshold {
			log.Printf("[SLOW REQUEST] %s %s - Status: %d, Latency: %v",
				method, path, status, latency)
		}

		if gin.Mode() == gin.DebugMode {
			c.Header("X-Response-Time", latency.String())
			c.Header("X-Request-ID", fmt.Sprintf("%d", time.Now().UnixNano()))
		}
	}
}

// RateLimit is a per-IP sliding window limiter, rpm requests per minute.
func RateLimit(rpm int) gin.HandlerFunc {
	var requests sync.Map

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		var timestamps []time.Time
		if value, exists := requests.Load(ip); exists {
			timestamps = value.([]time.Time)
		}

		var validTimestamps []time.Time
		cutoff := now.Add(-time.Minute)
		for _, timestamp := range timestamps {
			if timestamp.After(cutoff) {
				validTimestamps = append(validTimestamps, timestamp)
			}
		}

		if len(validTimestamps) >= rpm {
			response.Abort(c, response.TOO_MANY_REQUESTS, "rate limit exceeded, retry in 60s")
			return
		}

		validTimestamps = append(validTimestamps, now)
		requests.Store(ip, validTimestamps)

		c.Next()
	}
}
