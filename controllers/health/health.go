package health

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"omnily-go-admin/mongodb"
	"omnily-go-admin/pkg/goroutinepool"
	"omnily-go-admin/pkg/monitoring"
	"omnily-go-admin/pkg/response"
	"omnily-go-admin/redis"
	"omnily-go-admin/services/public_service"
)

var startTime = time.Now()

// HealthController answers liveness, readiness and system-info probes.
type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// CheckHealth is the basic up probe.
func (h *HealthController) CheckHealth(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"service":   "omnily-go-admin",
		"version":   "1.0.0",
	})
}

// CheckLiveness reports only that the process is running.
func (h *HealthController) CheckLiveness(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// CheckReadiness verifies the backing stores before routing traffic.
func (h *HealthController) CheckReadiness(c *gin.Context) {
	issues := make([]string, 0)

	if err := h.pingDB(); err != nil {
		issues = append(issues, "database: "+err.Error())
	}
	if !redis.IsConnected() {
		issues = append(issues, "redis: connection failed")
	}
	if err := mongodb.Ping(); err != nil {
		issues = append(issues, "mongodb: "+err.Error())
	}

	if len(issues) > 0 {
		response.ErrorWithData(c, response.ERROR, gin.H{"issues": issues}, "service not ready")
		return
	}

	response.Success(c, gin.H{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}

// GetSystemInfo reports runtime, pool and realtime hub statistics.
func (h *HealthController) GetSystemInfo(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snapshot := monitoring.GetMetrics().GetSnapshot()

	info := gin.H{
		"service": gin.H{
			"name":    "omnily-go-admin",
			"version": "1.0.0",
			"uptime":  time.Since(startTime).String(),
		},
		"system": gin.H{
			"go_version":    runtime.Version(),
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
		},
		"memory": gin.H{
			"alloc":       bToMb(m.Alloc),
			"total_alloc": bToMb(m.TotalAlloc),
			"sys":         bToMb(m.Sys),
			"num_gc":      m.NumGC,
		},
		"database": h.dbStats(),
		"workers":  goroutinepool.GetPool().GetStats(),
		"redis": gin.H{
			"connected": redis.IsConnected(),
		},
		"websocket": public_service.GetWebSocketService().HealthCheck(),
		"metrics":   snapshot,
		"timestamp": time.Now().Unix(),
	}

	response.Success(c, info)
}

func (h *HealthController) pingDB() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (h *HealthController) dbStats() gin.H {
	sqlDB, err := h.db.DB()
	if err != nil {
		return gin.H{"error": err.Error()}
	}

	stats := sqlDB.Stats()
	return gin.H{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"max_open":         stats.MaxOpenConnections,
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
