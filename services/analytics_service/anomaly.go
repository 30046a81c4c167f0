package analytics_service

import (
	"fmt"
	"math"

	"omnily-go-admin/inout"
	"omnily-go-admin/pkg/monitoring"
)

// Anomaly severities.
const (
	AnomalyCritical = "critical"
	AnomalyWarning  = "warning"
	AnomalyInfo     = "info"
)

// DetectAnomalies evaluates the KPI snapshot against the fixed rule table and
// returns zero or more anomaly records. Pure, no I/O; the rules fire
// independently except the closing info rule, which only fires when nothing
// else did.
func (s *AnalyticsService) DetectAnomalies(kpi inout.AnalyticsKPI) []inout.Anomaly {
	anomalies := detectAnomalies(kpi, s.cfg)
	for _, a := range anomalies {
		monitoring.RecordAnomaly(a.Type)
	}
	return anomalies
}

func detectAnomalies(kpi inout.AnalyticsKPI, cfg Config) []inout.Anomaly {
	anomalies := []inout.Anomaly{}

	if kpi.RetentionRate < cfg.RetentionCritical {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyCritical,
			Title: "Critical Retention Rate",
			Description: fmt.Sprintf("Only %.1f%% of customers come back. High risk of customer loss.",
				kpi.RetentionRate),
			Metric:    "Retention Rate",
			Value:     kpi.RetentionRate,
			Threshold: cfg.RetentionCritical,
		})
	} else if kpi.RetentionRate < cfg.RetentionWarning {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyWarning,
			Title: "Retention Rate Below Average",
			Description: fmt.Sprintf("%.1f%% is below the industry average (%.0f%%). Improve loyalty follow-up.",
				kpi.RetentionRate, cfg.RetentionWarning),
			Metric:    "Retention Rate",
			Value:     kpi.RetentionRate,
			Threshold: cfg.RetentionWarning,
		})
	}

	if kpi.RevenueChange < cfg.RevenueDropCritical {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyCritical,
			Title: "Significant Revenue Drop",
			Description: fmt.Sprintf("Revenue down %.1f%%. Requires immediate action.",
				math.Abs(kpi.RevenueChange)),
			Metric:    "Revenue",
			Value:     kpi.RevenueChange,
			Threshold: cfg.RevenueDropCritical,
		})
	} else if kpi.RevenueChange < 0 {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyWarning,
			Title: "Revenue Declining",
			Description: fmt.Sprintf("Negative trend of %.1f%%. Monitor closely.",
				math.Abs(kpi.RevenueChange)),
			Metric:    "Revenue",
			Value:     kpi.RevenueChange,
			Threshold: 0,
		})
	}

	redemptionRate := redemptionRate(kpi)
	if redemptionRate < cfg.RedemptionRateFloor && kpi.PointsDistributed > cfg.RedemptionMinPoints {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyWarning,
			Title: "Low Redemption Rate",
			Description: fmt.Sprintf("Only %.1f%% of points get redeemed. Customers may be forgetting their balance.",
				redemptionRate),
			Metric:    "Redemption Rate",
			Value:     redemptionRate,
			Threshold: cfg.RedemptionRateFloor,
		})
	}

	if kpi.CustomersChange < cfg.CustomersDropWarning {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyWarning,
			Title: "Active Customer Loss",
			Description: fmt.Sprintf("You lost %.1f%% of active customers. Start reactivation campaigns.",
				math.Abs(kpi.CustomersChange)),
			Metric:    "Active Customers",
			Value:     kpi.CustomersChange,
			Threshold: cfg.CustomersDropWarning,
		})
	}

	if len(anomalies) == 0 && kpi.RevenueChange > cfg.GrowthInfoThreshold {
		anomalies = append(anomalies, inout.Anomaly{
			Type:  AnomalyInfo,
			Title: "Excellent Growth",
			Description: fmt.Sprintf("Revenue growing %.1f%%. Keep it up.",
				kpi.RevenueChange),
			Metric:    "Revenue Growth",
			Value:     kpi.RevenueChange,
			Threshold: cfg.GrowthInfoThreshold,
		})
	}

	return anomalies
}

// redemptionRate is redeemed rewards per hundred distributed points, as a
// percentage. Zero when no points are out.
func redemptionRate(kpi inout.AnalyticsKPI) float64 {
	if kpi.PointsDistributed == 0 {
		return 0
	}
	return float64(kpi.RewardsRedeemed) / (float64(kpi.PointsDistributed) / 100) * 100
}
