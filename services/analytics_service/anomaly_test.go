package analytics_service

import (
	"testing"

	"omnily-go-admin/inout"
)

// healthyKPI passes every anomaly rule without firing the growth info rule.
func healthyKPI() inout.AnalyticsKPI {
	return inout.AnalyticsKPI{
		RetentionRate:     75,
		RevenueChange:     5,
		CustomersChange:   2,
		PointsDistributed: 500,
		RewardsRedeemed:   40,
	}
}

func anomalyTypes(anomalies []inout.Anomaly) []string {
	types := make([]string, len(anomalies))
	for i, a := range anomalies {
		types[i] = a.Type
	}
	return types
}

func TestDetectAnomalies_Healthy(t *testing.T) {
	got := detectAnomalies(healthyKPI(), DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalyTypes(got))
	}
}

func TestDetectAnomalies_RetentionBoundary(t *testing.T) {
	cfg := DefaultConfig()

	kpi := healthyKPI()
	kpi.RetentionRate = 39.999
	got := detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Type != AnomalyCritical {
		t.Fatalf("retention 39.999: got %v, want one critical", anomalyTypes(got))
	}

	kpi.RetentionRate = 40.0
	got = detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Type != AnomalyWarning {
		t.Fatalf("retention 40.0: got %v, want one warning", anomalyTypes(got))
	}

	kpi.RetentionRate = 60.0
	got = detectAnomalies(kpi, cfg)
	if len(got) != 0 {
		t.Fatalf("retention 60.0: got %v, want none", anomalyTypes(got))
	}
}

func TestDetectAnomalies_RevenueRules(t *testing.T) {
	cfg := DefaultConfig()

	kpi := healthyKPI()
	kpi.RevenueChange = -10.5
	got := detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Type != AnomalyCritical || got[0].Metric != "Revenue" {
		t.Fatalf("revenue -10.5: got %v", got)
	}

	kpi.RevenueChange = -3
	got = detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Type != AnomalyWarning {
		t.Fatalf("revenue -3: got %v, want one warning", anomalyTypes(got))
	}
}

func TestDetectAnomalies_RedemptionRate(t *testing.T) {
	cfg := DefaultConfig()

	// 50 redemptions against 2000 points is a 250% rate, well above the
	// floor, so the rule must stay quiet.
	kpi := healthyKPI()
	kpi.PointsDistributed = 2000
	kpi.RewardsRedeemed = 50
	got := detectAnomalies(kpi, cfg)
	if len(got) != 0 {
		t.Fatalf("redemption 250%%: got %v, want none", anomalyTypes(got))
	}

	// 1 redemption per 5000 points is 2%, under the floor.
	kpi.PointsDistributed = 5000
	kpi.RewardsRedeemed = 1
	got = detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Metric != "Redemption Rate" {
		t.Fatalf("redemption 2%%: got %v, want redemption warning", got)
	}

	// Zero points distributed never divides by zero and never fires.
	kpi.PointsDistributed = 0
	kpi.RewardsRedeemed = 0
	got = detectAnomalies(kpi, cfg)
	if len(got) != 0 {
		t.Fatalf("zero points: got %v, want none", anomalyTypes(got))
	}
}

func TestDetectAnomalies_CustomerLoss(t *testing.T) {
	kpi := healthyKPI()
	kpi.CustomersChange = -6
	got := detectAnomalies(kpi, DefaultConfig())
	if len(got) != 1 || got[0].Metric != "Active Customers" {
		t.Fatalf("customers -6: got %v", got)
	}
}

func TestDetectAnomalies_GrowthInfoOnlyWhenClean(t *testing.T) {
	cfg := DefaultConfig()

	kpi := healthyKPI()
	kpi.RevenueChange = 15
	got := detectAnomalies(kpi, cfg)
	if len(got) != 1 || got[0].Type != AnomalyInfo {
		t.Fatalf("clean growth: got %v, want one info", anomalyTypes(got))
	}

	// With another anomaly present the info entry must not appear.
	kpi.RetentionRate = 30
	got = detectAnomalies(kpi, cfg)
	for _, a := range got {
		if a.Type == AnomalyInfo {
			t.Fatalf("info anomaly fired alongside %v", anomalyTypes(got))
		}
	}
}
