package analytics_service

// Config holds every segmentation cut-point and anomaly/recommendation
// threshold used by the derivation pipeline. Values are overridable from the
// application config file and default to the platform's standard tuning.
type Config struct {
	// Segmentation cut-point positions over customers sorted by descending
	// spend. The cut value is read at index floor(n*position).
	VIPPosition        float64 `yaml:"vip_position"`
	RegularPosition    float64 `yaml:"regular_position"`
	OccasionalPosition float64 `yaml:"occasional_position"`

	// Anomaly thresholds.
	RetentionCritical    float64 `yaml:"retention_critical"`
	RetentionWarning     float64 `yaml:"retention_warning"`
	RevenueDropCritical  float64 `yaml:"revenue_drop_critical"`
	RedemptionRateFloor  float64 `yaml:"redemption_rate_floor"`
	RedemptionMinPoints  int64   `yaml:"redemption_min_points"`
	CustomersDropWarning float64 `yaml:"customers_drop_warning"`
	GrowthInfoThreshold  float64 `yaml:"growth_info_threshold"`

	// Recommendation thresholds.
	AverageTicketTarget  float64 `yaml:"average_ticket_target"`
	AtRiskShareLimit     float64 `yaml:"at_risk_share_limit"`
	VIPShareFloor        float64 `yaml:"vip_share_floor"`
	RedemptionRemindRate float64 `yaml:"redemption_remind_rate"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		VIPPosition:          0.15,
		RegularPosition:      0.60,
		OccasionalPosition:   0.90,
		RetentionCritical:    40,
		RetentionWarning:     60,
		RevenueDropCritical:  -10,
		RedemptionRateFloor:  5,
		RedemptionMinPoints:  1000,
		CustomersDropWarning: -5,
		GrowthInfoThreshold:  10,
		AverageTicketTarget:  50,
		AtRiskShareLimit:     0.15,
		VIPShareFloor:        0.10,
		RedemptionRemindRate: 10,
	}
}
