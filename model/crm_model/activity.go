package crm_model

import "time"

// Activity types recorded against a customer.
const (
	ActivityPurchase   = "purchase"
	ActivityVisit      = "visit"
	ActivityRedemption = "redemption"
)

type CustomerActivity struct {
	Id                  string    `json:"id" gorm:"primaryKey;column:id"`
	CustomerId          string    `json:"customer_id" gorm:"column:customer_id"`
	OrganizationId      string    `json:"organization_id" gorm:"column:organization_id"`
	ActivityType        string    `json:"activity_type" gorm:"column:activity_type"`
	ActivityTitle       string    `json:"activity_title" gorm:"column:activity_title"`
	ActivityDescription string    `json:"activity_description" gorm:"column:activity_description"`
	MonetaryValue       float64   `json:"monetary_value" gorm:"column:monetary_value"`
	PointsEarned        int       `json:"points_earned" gorm:"column:points_earned"`
	PointsSpent         int       `json:"points_spent" gorm:"column:points_spent"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at"`
}

func (CustomerActivity) TableName() string {
	return "customer_activities"
}
