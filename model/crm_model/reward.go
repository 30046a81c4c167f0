package crm_model

import "time"

type Reward struct {
	Id             string    `json:"id" gorm:"primaryKey;column:id"`
	OrganizationId string    `json:"organization_id" gorm:"column:organization_id"`
	Name           string    `json:"name" gorm:"column:name"`
	PointsRequired int       `json:"points_required" gorm:"column:points_required"`
	Value          float64   `json:"value" gorm:"column:value"`
	IsActive       bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Reward) TableName() string {
	return "rewards"
}

type RewardRedemption struct {
	Id             string    `json:"id" gorm:"primaryKey;column:id"`
	OrganizationId string    `json:"organization_id" gorm:"column:organization_id"`
	CustomerId     string    `json:"customer_id" gorm:"column:customer_id"`
	RewardId       string    `json:"reward_id" gorm:"column:reward_id"`
	PointsSpent    int       `json:"points_spent" gorm:"column:points_spent"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}
