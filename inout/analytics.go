package inout

type GetDashboardReq struct {
	Days int `form:"days"`
}

type GetTopProductsReq struct {
	Limit int `form:"limit"`
}

// AnalyticsKPI pairs each metric with its change against the previous window.
// All change fields are relative percentages except RetentionChange, which is
// an absolute percentage-point difference.
type AnalyticsKPI struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	RevenueChange      float64 `json:"revenueChange"`
	ActiveCustomers    int64   `json:"activeCustomers"`
	CustomersChange    float64 `json:"customersChange"`
	TotalTransactions  int64   `json:"totalTransactions"`
	TransactionsChange float64 `json:"transactionsChange"`
	AverageTicket      float64 `json:"averageTicket"`
	TicketChange       float64 `json:"ticketChange"`
	PointsDistributed  int64   `json:"pointsDistributed"`
	PointsChange       float64 `json:"pointsChange"`
	RewardsRedeemed    int64   `json:"rewardsRedeemed"`
	RewardsChange      float64 `json:"rewardsChange"`
	RetentionRate      float64 `json:"retentionRate"`
	RetentionChange    float64 `json:"retentionChange"`
	CustomerLTV        float64 `json:"customerLTV"`
	LtvChange          float64 `json:"ltvChange"`
}

type TopProduct struct {
	Id      string  `json:"id"`
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
	Trend   float64 `json:"trend"`
}

type CampaignPerformance struct {
	Id             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Sent           int     `json:"sent"`
	Opened         int     `json:"opened"`
	Clicked        int     `json:"clicked"`
	OpenRate       float64 `json:"openRate"`
	ClickRate      float64 `json:"clickRate"`
	ConversionRate float64 `json:"conversionRate"`
}

type RevenueDataPoint struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

type CustomerSegment struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	AvgSpent     float64 `json:"avgSpent"`
	TotalRevenue float64 `json:"totalRevenue"`
	Color        string  `json:"color"`
	Description  string  `json:"description"`
}

type Anomaly struct {
	Type        string  `json:"type"` // critical | warning | info
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	Threshold   float64 `json:"threshold"`
}

type SmartRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // high | medium | low
	Category    string `json:"category"`
	Actionable  string `json:"actionable"`
}

type Predictions struct {
	NextMonthRevenue   float64 `json:"nextMonthRevenue"`
	NextMonthCustomers int64   `json:"nextMonthCustomers"`
	ChurnRisk          float64 `json:"churnRisk"`
	GrowthRate         float64 `json:"growthRate"`
}

type AIInsights struct {
	CustomerSegments []CustomerSegment     `json:"customerSegments"`
	Predictions      Predictions           `json:"predictions"`
	Anomalies        []Anomaly             `json:"anomalies"`
	Recommendations  []SmartRecommendation `json:"recommendations"`
}

type AnalyticsDashboard struct {
	Kpi                 AnalyticsKPI          `json:"kpi"`
	TopProducts         []TopProduct          `json:"topProducts"`
	CampaignPerformance []CampaignPerformance `json:"campaignPerformance"`
	RevenueChart        []RevenueDataPoint    `json:"revenueChart"`
}
