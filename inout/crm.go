package inout

import "omnily-go-admin/model/crm_model"

type ListCustomersReq struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Tier     string `form:"tier"`
	Search   string `form:"search"`
}

type ListCustomersResp struct {
	Total    int64                `json:"total"`
	Items    []crm_model.Customer `json:"items"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

type CreateCustomerReq struct {
	CompanyName      string `json:"company_name" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	Country          string `json:"country"`
	MarketingConsent bool   `json:"marketing_consent"`
	EmailConsent     bool   `json:"email_consent"`
}

type UpdateCustomerReq struct {
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type AddActivityReq struct {
	ActivityType  string  `json:"activity_type" binding:"required"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	MonetaryValue float64 `json:"monetary_value"`
	PointsEarned  int     `json:"points_earned"`
	PointsSpent   int     `json:"points_spent"`
}

type CreateCampaignReq struct {
	Name           string  `json:"name" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=email sms push direct_mail"`
	TargetSegments string  `json:"target_segments"`
	Subject        string  `json:"subject"`
	Content        string  `json:"content"`
	ScheduledAt    string  `json:"scheduled_at" binding:"omitempty,rfc3339"`
	Budget         float64 `json:"budget"`
}

type CRMStats struct {
	TotalCustomers     int64   `json:"total_customers"`
	ActiveCustomers    int64   `json:"active_customers"`
	VipCustomers       int64   `json:"vip_customers"`
	ChurnedCustomers   int64   `json:"churned_customers"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgCLV             float64 `json:"avg_clv"`
	AvgEngagement      float64 `json:"avg_engagement"`
	ActiveCampaigns    int64   `json:"active_campaigns"`
	ConversionRate     float64 `json:"conversion_rate"`
	CustomerGrowthRate float64 `json:"customer_growth_rate"`
}
