package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	DashboardSnapshot MessageType = "dashboard_snapshot"
	AnomalyAlert      MessageType = "anomaly_alert"
	NotificationEvent MessageType = "notification"
	SystemNotice      MessageType = "system_notice"
)

// Message is the wire format pushed to dashboard subscribers.
type Message struct {
	Type           MessageType `json:"type"`
	OrganizationId string      `json:"organizationId,omitempty"`
	Content        string      `json:"content,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Time           string      `json:"time"`
}

// NewDashboardMessage wraps a dashboard snapshot for one organization.
func NewDashboardMessage(organizationId string, data interface{}) ([]byte, error) {
	msg := Message{
		Type:           DashboardSnapshot,
		OrganizationId: organizationId,
		Data:           data,
		Time:           time.Now().Format("2006-01-02 15:04:05"),
	}

	return json.Marshal(msg)
}

// NewAnomalyMessage wraps an anomaly alert for one organization.
func NewAnomalyMessage(organizationId string, data interface{}) ([]byte, error) {
	msg := Message{
		Type:           AnomalyAlert,
		OrganizationId: organizationId,
		Data:           data,
		Time:           time.Now().Format("2006-01-02 15:04:05"),
	}

	return json.Marshal(msg)
}

// NewNotificationMessage wraps a queued notification for one organization.
func NewNotificationMessage(organizationId string, data interface{}) ([]byte, error) {
	msg := Message{
		Type:           NotificationEvent,
		OrganizationId: organizationId,
		Data:           data,
		Time:           time.Now().Format("2006-01-02 15:04:05"),
	}

	return json.Marshal(msg)
}

// NewSystemNotice builds a broadcast notice.
func NewSystemNotice(content string) ([]byte, error) {
	msg := Message{
		Type:    SystemNotice,
		Content: content,
		Time:    time.Now().Format("2006-01-02 15:04:05"),
	}

	return json.Marshal(msg)
}
