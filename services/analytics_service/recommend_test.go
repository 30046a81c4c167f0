package analytics_service

import (
	"testing"

	"omnily-go-admin/inout"
)

func TestBuildRecommendations_NoneWhenHealthy(t *testing.T) {
	kpi := inout.AnalyticsKPI{
		RetentionRate:     80,
		AverageTicket:     60,
		ActiveCustomers:   100,
		TotalRevenue:      10000,
		PointsDistributed: 500,
	}
	segments := []inout.CustomerSegment{
		{Name: "VIP Customers", Count: 20, TotalRevenue: 6000},
		{Name: "At Risk Customers", Count: 5, AvgSpent: 10},
	}

	got := buildRecommendations(kpi, segments, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(got))
	}
}

func TestBuildRecommendations_ImpactOrdering(t *testing.T) {
	// Low ticket fires high impact, low redemption fires medium, and a
	// retention between the two thresholds fires medium as well.
	kpi := inout.AnalyticsKPI{
		RetentionRate:     50,
		AverageTicket:     20,
		TotalTransactions: 100,
		ActiveCustomers:   100,
		TotalRevenue:      2000,
		PointsDistributed: 5000,
		RewardsRedeemed:   2,
	}

	got := buildRecommendations(kpi, nil, DefaultConfig())
	if len(got) < 3 {
		t.Fatalf("expected at least 3 recommendations, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if impactOrder[got[i-1].Impact] > impactOrder[got[i].Impact] {
			t.Fatalf("recommendations out of impact order: %s before %s", got[i-1].Impact, got[i].Impact)
		}
	}
	if got[0].Impact != ImpactHigh {
		t.Errorf("first recommendation impact = %s, want high", got[0].Impact)
	}
}

func TestBuildRecommendations_RetentionImpactEscalates(t *testing.T) {
	kpi := inout.AnalyticsKPI{RetentionRate: 50, AverageTicket: 100}
	got := buildRecommendations(kpi, nil, DefaultConfig())
	if len(got) != 1 || got[0].Impact != ImpactMedium {
		t.Fatalf("retention 50: got %+v, want one medium", got)
	}

	kpi.RetentionRate = 30
	got = buildRecommendations(kpi, nil, DefaultConfig())
	if len(got) != 1 || got[0].Impact != ImpactHigh {
		t.Fatalf("retention 30: got %+v, want one high", got)
	}
}

func TestBuildRecommendations_AtRiskShare(t *testing.T) {
	kpi := inout.AnalyticsKPI{
		RetentionRate:   80,
		AverageTicket:   100,
		ActiveCustomers: 100,
	}
	segments := []inout.CustomerSegment{
		{Name: "At Risk Customers", Count: 20, AvgSpent: 50},
	}

	got := buildRecommendations(kpi, segments, DefaultConfig())
	if len(got) != 1 || got[0].Category != "Customer Recovery" {
		t.Fatalf("at-risk 20%%: got %+v, want recovery recommendation", got)
	}

	// 10 of 100 is within the tolerated share.
	segments[0].Count = 10
	got = buildRecommendations(kpi, segments, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("at-risk 10%%: got %+v, want none", got)
	}
}

func TestBuildRecommendations_VIPShare(t *testing.T) {
	kpi := inout.AnalyticsKPI{
		RetentionRate:   80,
		AverageTicket:   100,
		ActiveCustomers: 100,
		TotalRevenue:    10000,
	}
	segments := []inout.CustomerSegment{
		{Name: "VIP Customers", Count: 5, TotalRevenue: 4000},
	}

	got := buildRecommendations(kpi, segments, DefaultConfig())
	if len(got) != 1 || got[0].Category != "Growth" {
		t.Fatalf("vip 5%%: got %+v, want growth recommendation", got)
	}

	segments[0].Count = 15
	got = buildRecommendations(kpi, segments, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("vip 15%%: got %+v, want none", got)
	}
}
