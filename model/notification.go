package model

// Notification kinds carried on the queue.
const (
	NotificationCampaign = "campaign"
	NotificationAnomaly  = "anomaly"
)

type Notification struct {
	Kind           string `json:"kind"`
	OrganizationId string `json:"organization_id"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Timestamp      string `json:"timestamp"`
}
