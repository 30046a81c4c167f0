package crm_model

import "time"

// Campaign lifecycle states.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
	CampaignStatusPaused    = "paused"
)

type MarketingCampaign struct {
	Id               string     `json:"id" gorm:"primaryKey;column:id"`
	OrganizationId   string     `json:"organization_id" gorm:"column:organization_id"`
	Name             string     `json:"name" gorm:"column:name"`
	Type             string     `json:"type" gorm:"column:type"`
	Status           string     `json:"status" gorm:"column:status"`
	Subject          string     `json:"subject" gorm:"column:subject"`
	Content          string     `json:"content" gorm:"column:content"`
	TargetSegments   string     `json:"target_segments" gorm:"column:target_segments"`
	ScheduledAt      *time.Time `json:"scheduled_at" gorm:"column:scheduled_at"`
	Budget           float64    `json:"budget" gorm:"column:budget"`
	SentCount        int        `json:"sent_count" gorm:"column:sent_count"`
	OpenedCount      int        `json:"opened_count" gorm:"column:opened_count"`
	ClickedCount     int        `json:"clicked_count" gorm:"column:clicked_count"`
	ConvertedCount   int        `json:"converted_count" gorm:"column:converted_count"`
	RevenueGenerated float64    `json:"revenue_generated" gorm:"column:revenue_generated"`
	CreatedBy        string     `json:"created_by" gorm:"column:created_by"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (MarketingCampaign) TableName() string {
	return "marketing_campaigns"
}
