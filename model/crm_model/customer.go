package crm_model

import "time"

type Customer struct {
	Id                 string     `json:"id" gorm:"primaryKey;column:id"`
	OrganizationId     string     `json:"organization_id" gorm:"column:organization_id"`
	Name               string     `json:"name" gorm:"column:name"`
	FirstName          string     `json:"first_name" gorm:"column:first_name"`
	LastName           string     `json:"last_name" gorm:"column:last_name"`
	Email              string     `json:"email" gorm:"column:email"`
	Phone              string     `json:"phone" gorm:"column:phone"`
	BirthDate          string     `json:"birth_date" gorm:"column:birth_date"`
	Gender             string     `json:"gender" gorm:"column:gender"`
	Address            string     `json:"address" gorm:"column:address"`
	TotalSpent         float64    `json:"total_spent" gorm:"column:total_spent"`
	TotalOrders        int        `json:"total_orders" gorm:"column:total_orders"`
	AvgOrderValue      float64    `json:"avg_order_value" gorm:"column:avg_order_value"`
	LifetimeValue      float64    `json:"lifetime_value" gorm:"column:lifetime_value"`
	Points             int        `json:"points" gorm:"column:points"`
	Tier               string     `json:"tier" gorm:"column:tier"`
	Status             string     `json:"status" gorm:"column:status"`
	IsActive           bool       `json:"is_active" gorm:"column:is_active"`
	EngagementScore    float64    `json:"engagement_score" gorm:"column:engagement_score"`
	PredictedChurnRisk float64    `json:"predicted_churn_risk" gorm:"column:predicted_churn_risk"`
	Visits             int        `json:"visits" gorm:"column:visits"`
	MarketingConsent   bool       `json:"marketing_consent" gorm:"column:marketing_consent"`
	PrivacyConsent     bool       `json:"privacy_consent" gorm:"column:privacy_consent"`
	LastVisit          *time.Time `json:"last_visit" gorm:"column:last_visit"`
	LastActivity       *time.Time `json:"last_activity" gorm:"column:last_activity"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
