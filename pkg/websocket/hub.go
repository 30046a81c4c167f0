package websocket

import (
	"log"
	"sync"
	"sync/atomic"
)

// Hub tracks dashboard subscribers and routes snapshots to the clients of
// each organization.
type Hub struct {
	Clients map[*Client]bool

	// Organization id to connected clients.
	OrgClients map[string][]*Client

	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex

	stats struct {
		totalConnections int64
		messageCount     int64
	}
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
		OrgClients: make(map[string][]*Client),
	}
}

// Run processes register, unregister and broadcast events.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.OrgClients[client.OrganizationID] = append(h.OrgClients[client.OrganizationID], client)
			orgConnCount := len(h.OrgClients[client.OrganizationID])
			total := len(h.Clients)
			atomic.AddInt64(&h.stats.totalConnections, 1)
			h.mu.Unlock()

			log.Printf("dashboard subscriber registered: org=%s, connection=%s, org connections=%d, total=%d",
				client.OrganizationID, client.ConnectionID, orgConnCount, total)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				close(client.Send)
				delete(h.Clients, client)
				h.removeFromOrgLocked(client)
				atomic.AddInt64(&h.stats.totalConnections, -1)
				remaining := len(h.Clients)
				h.mu.Unlock()

				log.Printf("dashboard subscriber unregistered: org=%s, connection=%s, total=%d",
					client.OrganizationID, client.ConnectionID, remaining)
			} else {
				h.mu.Unlock()
			}

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
					h.removeFromOrgLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToOrganization delivers a message to every subscriber of the
// organization and returns how many clients received it. Slow clients
// get dropped instead of blocking the push.
func (h *Hub) SendToOrganization(organizationID string, message []byte) int {
	// The sends stay under the read lock so no channel can be closed
	// mid-push; they are non-blocking, so the lock is held only briefly.
	h.mu.RLock()
	sent := 0
	var slow []*Client
	for _, client := range h.OrgClients[organizationID] {
		select {
		case client.Send <- message:
			sent++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		go h.dropSlowClient(client)
	}

	atomic.AddInt64(&h.stats.messageCount, int64(sent))
	return sent
}

// IsOrganizationWatched reports whether the organization has subscribers, so
// callers can skip refresh work for idle dashboards.
func (h *Hub) IsOrganizationWatched(organizationID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, exists := h.OrgClients[organizationID]
	return exists && len(clients) > 0
}

// WatchedOrganizations lists organizations with at least one subscriber.
func (h *Hub) WatchedOrganizations() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var ids []string
	for id, clients := range h.OrgClients {
		if len(clients) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetStats reports hub health for monitoring endpoints.
func (h *Hub) GetStats() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return map[string]interface{}{
		"total_connections": len(h.Clients),
		"organizations":     len(h.OrgClients),
		"message_count":     atomic.LoadInt64(&h.stats.messageCount),
	}
}

func (h *Hub) dropSlowClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.Clients[client]; !ok {
		return
	}

	log.Printf("subscriber send buffer full, dropping connection: org=%s, connection=%s",
		client.OrganizationID, client.ConnectionID)

	close(client.Send)
	delete(h.Clients, client)
	h.removeFromOrgLocked(client)
	atomic.AddInt64(&h.stats.totalConnections, -1)
}

// removeFromOrgLocked detaches the client from its organization bucket.
// Callers hold h.mu.
func (h *Hub) removeFromOrgLocked(client *Client) {
	clients := h.OrgClients[client.OrganizationID]
	for i, c := range clients {
		if c == client {
			h.OrgClients[client.OrganizationID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.OrgClients[client.OrganizationID]) == 0 {
		delete(h.OrgClients, client.OrganizationID)
	}
}
