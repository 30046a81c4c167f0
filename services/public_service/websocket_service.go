package public_service

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"omnily-go-admin/pkg/websocket"
)

// WebSocketService owns the realtime hub that streams dashboard
// snapshots and anomaly alerts to connected back-office clients.
type WebSocketService struct {
	hub  *websocket.Hub
	once sync.Once

	activeConnections int64
	snapshotsSent     int64
	alertsSent        int64
	startTime         time.Time
	lastError         error
	lastErrorTime     time.Time
	mu                sync.Mutex
}

var (
	wsService     *WebSocketService
	wsServiceOnce sync.Once
)

// GetWebSocketService returns the process-wide service singleton.
func GetWebSocketService() *WebSocketService {
	wsServiceOnce.Do(func() {
		wsService = &WebSocketService{
			startTime: time.Now(),
		}
	})
	return wsService
}

// InitHub starts the hub loop exactly once.
func (s *WebSocketService) InitHub() *websocket.Hub {
	s.once.Do(func() {
		s.hub = websocket.NewHub()
		go s.hub.Run()
		log.Println("websocket hub started")
	})
	return s.hub
}

// GetHub returns the hub, initializing it on first use.
func (s *WebSocketService) GetHub() *websocket.Hub {
	if s.hub == nil {
		return s.InitHub()
	}
	return s.hub
}

// PushDashboard sends a fresh dashboard snapshot to every client
// subscribed to the organization. Returns the number of clients reached.
func (s *WebSocketService) PushDashboard(organizationID string, snapshot interface{}) int {
	hub := s.GetHub()
	msg, err := websocket.NewDashboardMessage(organizationID, snapshot)
	if err != nil {
		s.recordError(err)
		return 0
	}
	n := hub.SendToOrganization(organizationID, msg)
	atomic.AddInt64(&s.snapshotsSent, int64(n))
	return n
}

// PushAnomalies sends anomaly alerts to the organization's clients.
func (s *WebSocketService) PushAnomalies(organizationID string, anomalies interface{}) int {
	hub := s.GetHub()
	msg, err := websocket.NewAnomalyMessage(organizationID, anomalies)
	if err != nil {
		s.recordError(err)
		return 0
	}
	n := hub.SendToOrganization(organizationID, msg)
	atomic.AddInt64(&s.alertsSent, int64(n))
	return n
}

// BroadcastNotice pushes a system notice to every connected client,
// regardless of organization.
func (s *WebSocketService) BroadcastNotice(content string) {
	hub := s.GetHub()
	msg, err := websocket.NewSystemNotice(content)
	if err != nil {
		s.recordError(err)
		return
	}
	hub.Broadcast <- msg
}

// PushNotification relays a queued notification to the organization's
// clients.
func (s *WebSocketService) PushNotification(organizationID string, event interface{}) int {
	hub := s.GetHub()
	msg, err := websocket.NewNotificationMessage(organizationID, event)
	if err != nil {
		s.recordError(err)
		return 0
	}
	return hub.SendToOrganization(organizationID, msg)
}

// WatchedOrganizations lists organizations with at least one live client.
// The refresher uses it to skip recomputing dashboards nobody is viewing.
func (s *WebSocketService) WatchedOrganizations() []string {
	return s.GetHub().WatchedOrganizations()
}

// IsOrganizationWatched reports whether any client subscribes to the organization.
func (s *WebSocketService) IsOrganizationWatched(organizationID string) bool {
	return s.GetHub().IsOrganizationWatched(organizationID)
}

// RegisterConnectionStatus tracks the live connection gauge.
func (s *WebSocketService) RegisterConnectionStatus(connected bool) {
	if connected {
		atomic.AddInt64(&s.activeConnections, 1)
	} else {
		atomic.AddInt64(&s.activeConnections, -1)
	}
}

func (s *WebSocketService) recordError(err error) {
	s.mu.Lock()
	s.lastError = err
	s.lastErrorTime = time.Now()
	s.mu.Unlock()
	log.Printf("websocket push failed: %v", err)
}

// GetMetrics reports service counters for the monitoring endpoints.
func (s *WebSocketService) GetMetrics() map[string]interface{} {
	hubStats := s.GetHub().GetStats()

	s.mu.Lock()
	lastErr := s.lastError
	lastErrTime := s.lastErrorTime
	s.mu.Unlock()

	return map[string]interface{}{
		"active_connections": atomic.LoadInt64(&s.activeConnections),
		"snapshots_sent":     atomic.LoadInt64(&s.snapshotsSent),
		"alerts_sent":        atomic.LoadInt64(&s.alertsSent),
		"uptime":             time.Since(s.startTime).String(),
		"last_error":         lastErr,
		"last_error_time":    lastErrTime,
		"hub_stats":          hubStats,
	}
}

// HealthCheck reports a coarse status for the health endpoint.
func (s *WebSocketService) HealthCheck() map[string]interface{} {
	s.mu.Lock()
	lastErr := s.lastError
	lastErrTime := s.lastErrorTime
	s.mu.Unlock()

	status := "healthy"
	if lastErr != nil && time.Since(lastErrTime) < 5*time.Minute {
		status = "degraded"
	}

	return map[string]interface{}{
		"status":             status,
		"active_connections": atomic.LoadInt64(&s.activeConnections),
		"uptime":             time.Since(s.startTime).String(),
	}
}
