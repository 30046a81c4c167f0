package analytics_service

import (
	"context"
	"fmt"
	"math"

	"omnily-go-admin/inout"
)

// GetAIInsights composes segmentation, anomaly detection, recommendations and
// trend projections into one insights object.
func (s *AnalyticsService) GetAIInsights(ctx context.Context, organizationId string, days int) (*inout.AIInsights, error) {
	kpi, err := s.GetKPIs(ctx, organizationId, days)
	if err != nil {
		return nil, fmt.Errorf("insights kpi: %w", err)
	}
	segments, err := s.GetCustomerSegmentation(ctx, organizationId)
	if err != nil {
		return nil, fmt.Errorf("insights segmentation: %w", err)
	}

	return &inout.AIInsights{
		CustomerSegments: segments,
		Predictions:      projectTrends(*kpi),
		Anomalies:        detectAnomalies(*kpi, s.cfg),
		Recommendations:  buildRecommendations(*kpi, segments, s.cfg),
	}, nil
}

// projectTrends extrapolates next-month figures by carrying the current window
// deltas forward. Point estimates, not forecasts.
func projectTrends(kpi inout.AnalyticsKPI) inout.Predictions {
	return inout.Predictions{
		NextMonthRevenue:   kpi.TotalRevenue * (1 + kpi.RevenueChange/100),
		NextMonthCustomers: int64(math.Round(float64(kpi.ActiveCustomers) * (1 + kpi.CustomersChange/100))),
		ChurnRisk:          100 - kpi.RetentionRate,
		GrowthRate:         kpi.RevenueChange,
	}
}
