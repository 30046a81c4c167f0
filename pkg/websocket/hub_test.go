package websocket

import (
	"testing"
	"time"
)

func newTestClient(hub *Hub, org, connID string) *Client {
	return &Client{
		Hub:            hub,
		Send:           make(chan []byte, 4),
		OrganizationID: org,
		ConnectionID:   connID,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubOrganizationRouting(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a1 := newTestClient(hub, "org-a", "c1")
	a2 := newTestClient(hub, "org-a", "c2")
	b1 := newTestClient(hub, "org-b", "c3")

	hub.Register <- a1
	hub.Register <- a2
	hub.Register <- b1
	waitFor(t, func() bool { return hub.IsOrganizationWatched("org-b") })

	if !hub.IsOrganizationWatched("org-a") {
		t.Error("expected org-a to be watched")
	}
	if hub.IsOrganizationWatched("org-c") {
		t.Error("did not expect org-c to be watched")
	}
	if got := len(hub.WatchedOrganizations()); got != 2 {
		t.Errorf("WatchedOrganizations count = %d, want 2", got)
	}

	sent := hub.SendToOrganization("org-a", []byte("snapshot"))
	if sent != 2 {
		t.Errorf("SendToOrganization reached %d clients, want 2", sent)
	}
	select {
	case msg := <-a1.Send:
		if string(msg) != "snapshot" {
			t.Errorf("a1 received %q, want %q", msg, "snapshot")
		}
	default:
		t.Error("a1 received nothing")
	}
	select {
	case <-b1.Send:
		t.Error("b1 should not receive org-a messages")
	default:
	}

	hub.Unregister <- a1
	hub.Unregister <- a2
	waitFor(t, func() bool { return !hub.IsOrganizationWatched("org-a") })

	if got := len(hub.WatchedOrganizations()); got != 1 {
		t.Errorf("WatchedOrganizations count after unregister = %d, want 1", got)
	}
}

func TestSendToOrganizationDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := newTestClient(hub, "org-a", "slow")
	hub.Register <- slow
	waitFor(t, func() bool { return hub.IsOrganizationWatched("org-a") })

	// Fill the send buffer so the next push cannot be delivered.
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("fill")
	}

	if sent := hub.SendToOrganization("org-a", []byte("overflow")); sent != 0 {
		t.Errorf("SendToOrganization reached %d clients, want 0", sent)
	}

	waitFor(t, func() bool { return !hub.IsOrganizationWatched("org-a") })
}

func TestSendToOrganizationDuringUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	const rounds = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			hub.SendToOrganization("org-a", []byte("snapshot"))
		}
	}()

	// Churn subscribers while the pushes run; a close racing a send
	// would panic the pushing goroutine.
	for i := 0; i < rounds; i++ {
		c := newTestClient(hub, "org-a", "churn")
		hub.Register <- c
		go func() {
			for range c.Send {
			}
		}()
		hub.Unregister <- c
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pushes did not finish")
	}
}

func TestBroadcastReachesAllOrganizations(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(hub, "org-a", "c1")
	b := newTestClient(hub, "org-b", "c2")
	hub.Register <- a
	hub.Register <- b
	waitFor(t, func() bool { return hub.IsOrganizationWatched("org-b") })

	hub.Broadcast <- []byte("notice")

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			if string(msg) != "notice" {
				t.Errorf("%s received %q, want %q", c.ConnectionID, msg, "notice")
			}
		case <-time.After(2 * time.Second):
			t.Errorf("%s received nothing", c.ConnectionID)
		}
	}
}
