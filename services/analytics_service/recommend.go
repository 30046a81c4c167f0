package analytics_service

import (
	"fmt"
	"sort"

	"omnily-go-admin/inout"
)

// Recommendation impact levels.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

var impactOrder = map[string]int{ImpactHigh: 0, ImpactMedium: 1, ImpactLow: 2}

// BuildRecommendations evaluates the KPI snapshot and segment list against the
// fixed heuristics and returns recommendations sorted by impact. Pure, no I/O.
// The projected figures in the descriptions are informational estimates, not
// validated forecasts.
func (s *AnalyticsService) BuildRecommendations(kpi inout.AnalyticsKPI, segments []inout.CustomerSegment) []inout.SmartRecommendation {
	return buildRecommendations(kpi, segments, s.cfg)
}

func buildRecommendations(kpi inout.AnalyticsKPI, segments []inout.CustomerSegment, cfg Config) []inout.SmartRecommendation {
	recommendations := []inout.SmartRecommendation{}

	if kpi.RetentionRate < cfg.RetentionWarning {
		impact := ImpactMedium
		if kpi.RetentionRate < cfg.RetentionCritical {
			impact = ImpactHigh
		}
		recommendations = append(recommendations, inout.SmartRecommendation{
			Title: "Improve Retention Rate",
			Description: fmt.Sprintf("Your retention rate is %.1f%%, below the industry average. A 10%% lift could add %.1fk in revenue.",
				kpi.RetentionRate, kpi.TotalRevenue*0.1/1000),
			Impact:     impact,
			Category:   "Retention",
			Actionable: "Run an email re-engagement program for customers inactive for 30+ days",
		})
	}

	if kpi.AverageTicket < cfg.AverageTicketTarget {
		recommendations = append(recommendations, inout.SmartRecommendation{
			Title: "Raise the Average Ticket",
			Description: fmt.Sprintf("Your average ticket is %.2f. Bringing it to %.0f (industry average) would add %.1fk.",
				kpi.AverageTicket, cfg.AverageTicketTarget,
				(cfg.AverageTicketTarget-kpi.AverageTicket)*float64(kpi.TotalTransactions)/1000),
			Impact:     ImpactHigh,
			Category:   "Revenue",
			Actionable: "Create product bundles or \"spend X, get Y bonus points\" offers",
		})
	}

	if atRisk := findSegment(segments, "At Risk Customers"); atRisk != nil &&
		float64(atRisk.Count) > float64(kpi.ActiveCustomers)*cfg.AtRiskShareLimit {
		recommendations = append(recommendations, inout.SmartRecommendation{
			Title: "Too Many At-Risk Customers",
			Description: fmt.Sprintf("%d customers (%.1f%%) are at risk of churning. Recovering 30%% would add %.1fk in revenue.",
				atRisk.Count,
				safeDiv(float64(atRisk.Count), float64(kpi.ActiveCustomers))*100,
				atRisk.AvgSpent*float64(atRisk.Count)*0.3/1000),
			Impact:     ImpactHigh,
			Category:   "Customer Recovery",
			Actionable: "Send an exclusive \"20% off your next purchase\" offer to at-risk customers",
		})
	}

	rate := redemptionRate(kpi)
	if rate < cfg.RedemptionRemindRate && kpi.PointsDistributed > cfg.RedemptionMinPoints {
		recommendations = append(recommendations, inout.SmartRecommendation{
			Title: "Encourage Point Redemption",
			Description: fmt.Sprintf("%d points distributed but only %d redemptions (%.1f%%). Customers who redeem spend 40%% more.",
				kpi.PointsDistributed, kpi.RewardsRedeemed, rate),
			Impact:     ImpactMedium,
			Category:   "Engagement",
			Actionable: "Send \"you have points waiting\" reminders with an expiry deadline",
		})
	}

	if vip := findSegment(segments, "VIP Customers"); vip != nil && vip.Count > 0 {
		vipShare := safeDiv(float64(vip.Count), float64(kpi.ActiveCustomers))
		if vipShare < cfg.VIPShareFloor {
			revenueShare := safeDiv(vip.TotalRevenue, kpi.TotalRevenue) * 100
			recommendations = append(recommendations, inout.SmartRecommendation{
				Title: "Grow the VIP Segment",
				Description: fmt.Sprintf("Only %d VIPs (%.1f%%), yet they generate %.1f%% of revenue. Doubling them would lift revenue by %.1f%%.",
					vip.Count, vipShare*100, revenueShare, revenueShare),
				Impact:     ImpactHigh,
				Category:   "Growth",
				Actionable: "Create an exclusive VIP tier with premium perks to drive upsell",
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return impactOrder[recommendations[i].Impact] < impactOrder[recommendations[j].Impact]
	})
	return recommendations
}

func findSegment(segments []inout.CustomerSegment, name string) *inout.CustomerSegment {
	for i := range segments {
		if segments[i].Name == name {
			return &segments[i]
		}
	}
	return nil
}
