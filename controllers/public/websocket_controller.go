package public

import (
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"

	"omnily-go-admin/pkg/jwt"
	ws "omnily-go-admin/pkg/websocket"
	"omnily-go-admin/services/public_service"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

const (
	maxConnections      = 10000
	maxConnectionsPerIP = 20
	connectionCooldown  = time.Second
)

var (
	activeConnections int64
	ipConnections     sync.Map // ip -> *int64
	lastConnectAt     sync.Map // ip -> time.Time
)

// HandleDashboardStream upgrades the request to a websocket and
// subscribes the caller to its organization's dashboard feed.
// Auth comes from a JWT in the "token" query parameter or the
// Authorization header; the organization is taken from the claims.
func HandleDashboardStream(c *gin.Context) {
	clientIP := c.ClientIP()

	if atomic.LoadInt64(&activeConnections) >= maxConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "connection limit reached"})
		return
	}
	if !allowIP(clientIP) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many connections from this address"})
		return
	}

	claims, err := resolveClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}
	if claims.OrganizationID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "token carries no organization"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: ip=%s err=%v", clientIP, err)
		return
	}

	service := public_service.GetWebSocketService()
	hub := service.GetHub()

	client := &ws.Client{
		Hub:            hub,
		Conn:           conn,
		Send:           make(chan []byte, 256),
		UserID:         claims.UID,
		OrganizationID: claims.OrganizationID,
		ConnectionID:   uuid.New().String(),
	}

	select {
	case hub.Register <- client:
	case <-time.After(2 * time.Second):
		log.Printf("hub registration timed out: ip=%s org=%s", clientIP, claims.OrganizationID)
		conn.Close()
		return
	}

	atomic.AddInt64(&activeConnections, 1)
	trackIP(clientIP, 1)
	service.RegisterConnectionStatus(true)

	if welcome, err := ws.NewSystemNotice("subscribed to dashboard updates"); err == nil {
		select {
		case client.Send <- welcome:
		default:
		}
	}

	safeGoroutine("writePump", func() {
		client.WritePump()
	})
	safeGoroutine("readPump", func() {
		defer func() {
			atomic.AddInt64(&activeConnections, -1)
			trackIP(clientIP, -1)
			service.RegisterConnectionStatus(false)
		}()
		client.ReadPump()
	})
}

// resolveClaims validates the JWT from the query string or header.
func resolveClaims(c *gin.Context) (*jwt.SecureCustomClaims, error) {
	token := c.Query("token")
	if token == "" {
		auth := c.GetHeader("Authorization")
		token = strings.TrimPrefix(auth, "Bearer ")
	}
	return jwt.NewSecureJWTManager().ValidateToken(token)
}

func allowIP(ip string) bool {
	if last, ok := lastConnectAt.Load(ip); ok {
		if time.Since(last.(time.Time)) < connectionCooldown {
			return false
		}
	}
	lastConnectAt.Store(ip, time.Now())

	if v, ok := ipConnections.Load(ip); ok {
		if atomic.LoadInt64(v.(*int64)) >= maxConnectionsPerIP {
			return false
		}
	}
	return true
}

func trackIP(ip string, delta int64) {
	v, _ := ipConnections.LoadOrStore(ip, new(int64))
	if atomic.AddInt64(v.(*int64), delta) <= 0 {
		ipConnections.Delete(ip)
	}
}

// safeGoroutine keeps a panicking pump from taking the process down.
func safeGoroutine(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("websocket %s panic: %v\n%s", name, r, debug.Stack())
			}
		}()
		fn()
	}()
}
